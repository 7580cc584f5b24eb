// Package logger содержит общий логгер для server и agent.
//
// Пакет предоставляет Zap-логгер, настроенный на запись в файл с ротацией
// (lumberjack), и удобные методы для логирования HTTP-запросов и операций хранилищ.
package logger

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultFile — файл логов по умолчанию (относительно рабочей директории).
var DefaultFile = filepath.Join("runtime", "logs", "notekeeper.log")

// Logger представляет обёртку над zap.Logger.
//
// Встраивание *zap.Logger позволяет использовать все методы zap напрямую.
type Logger struct {
	*zap.Logger
}

// New создаёт файловый zap-логгер.
//
// Логи записываются в file (если пусто — DefaultFile).
// Для файлов включена ротация (MaxSize/MaxBackups/MaxAge) и сжатие архивов.
// level — debug|info|warn|error, неизвестное значение трактуется как info.
// Формат времени: "HH:MM:SS DD.MM.YYYY".
func New(file, level string) *Logger {
	if file == "" {
		file = DefaultFile
	}
	_ = os.MkdirAll(filepath.Dir(file), 0755)

	// lumberjack отвечает за ротацию файлов
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   file,
		MaxSize:    100, // MB
		MaxBackups: 10,
		MaxAge:     30, // дней
		Compress:   true,
	})

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = customTimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		writer,
		lvl,
	)

	return &Logger{Logger: zap.New(core, zap.AddCaller())}
}

// Nop возвращает логгер, который ничего не пишет (для тестов и --ephemeral).
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// LogRequest записывает структурированный лог об HTTP-запросе.
//
// method и uri — параметры запроса,
// status — HTTP-статус ответа,
// responseSize — размер ответа в байтах,
// duration — длительность обработки запроса в миллисекундах.
func (logger *Logger) LogRequest(method, uri string, status, responseSize int, duration float64) {
	logger.Info("HTTP request",
		zap.String("method", method),
		zap.String("uri", uri),
		zap.Int("status", status),
		zap.Int("response_size", responseSize),
		zap.Float64("duration_ms", duration),
	)
}

// LogOperation записывает результат операции хранилища.
// Ошибка пишется уровнем warn, успех — debug.
func (logger *Logger) LogOperation(op, key string, err error) {
	if err != nil {
		logger.Warn("storage operation failed",
			zap.String("op", op),
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}
	logger.Debug("storage operation",
		zap.String("op", op),
		zap.String("key", key),
	)
}

// customTimeEncoder форматирует время для логов в виде "HH:MM:SS DD.MM.YYYY".
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05 02.01.2006"))
}
