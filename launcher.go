//go:build ignore

// Запуск: go run launcher.go
package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"
)

const configPath = "./configs/notekeeper.yaml"

func main() {
	fmt.Println("Запуск NoteKeeper...")

	clientName := "notekeeper"
	if runtime.GOOS == "windows" {
		clientName = "notekeeper.exe"
	}
	if os.Getenv("NOTEKEEPER_SIGNING_KEY") == "" {
		fmt.Println("Задай NOTEKEEPER_SIGNING_KEY (>= 32 символов) в окружении или .env")
	}

	// запускаем сервер на фоне
	server := exec.Command("go", "run", "./cmd/server", "-config", configPath)
	server.Stdout = os.Stdout
	server.Stderr = os.Stderr

	if err := server.Start(); err != nil {
		fmt.Printf("Ошибка запуска сервера: %v\n", err)
		return
	}

	time.Sleep(3 * time.Second)
	// собираем клиента
	if _, err := os.Stat(clientName); os.IsNotExist(err) {
		fmt.Println("Сборка клиента...")
		build := exec.Command("go", "build", "-o", clientName, "./cmd/notekeeper")
		build.Stdout = os.Stdout
		build.Stderr = os.Stderr
		if err := build.Run(); err != nil {
			fmt.Printf("Ошибка сборки клиента: %v\n", err)
		}
		// если не винда даём права
		if runtime.GOOS != "windows" {
			os.Chmod(clientName, 0755)
		}
	}

	fmt.Println("Сервер запущен")
	// CLI и сервер должны смотреть в один конфиг, иначе у них разные хранилища
	if runtime.GOOS == "windows" {
		fmt.Printf("Данный терминал не закрывай. Открой новый и запускай: .\\notekeeper.exe --config %s\n", configPath)
	} else {
		fmt.Printf("Данный терминал не закрывай. Открой новый и запускай: ./notekeeper --config %s\n", configPath)
	}

	server.Wait()
}
