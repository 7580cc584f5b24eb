package notes

import (
	"slices"
	"strings"

	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/models"
)

// Search возвращает заметки, у которых title, content или category
// содержат query без учёта регистра. Пустой или пробельный query — вся коллекция,
// иначе query ищется как есть, вместе с пробелами по краям.
// Порядок — порядок вставки.
func (s *Store) Search(query string) []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return search(s.notes, query)
}

// Categories возвращает "All" и затем различные непустые категории
// в порядке первого появления в коллекции.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []string{models.AllCategories}
	seen := make(map[string]struct{}, len(s.notes))
	for _, n := range s.notes {
		if n.Category == "" {
			continue
		}
		if _, ok := seen[n.Category]; ok {
			continue
		}
		seen[n.Category] = struct{}{}
		out = append(out, n.Category)
	}
	return out
}

// View фильтрует по категории ("" или "All" — без фильтра), затем по query
// и возвращает результат в порядке отображения.
func (s *Store) View(category, query string) []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := s.notes
	if category != "" && category != models.AllCategories {
		filtered = make([]models.Note, 0, len(s.notes))
		for _, n := range s.notes {
			if n.Category == category {
				filtered = append(filtered, n)
			}
		}
	}
	return DisplayOrder(search(filtered, query))
}

// DisplayOrder возвращает копию notes, отсортированную по LastModified по убыванию.
// Сортировка стабильная: при равных отметках сохраняется исходный порядок.
func DisplayOrder(notes []models.Note) []models.Note {
	out := clone(notes)
	slices.SortStableFunc(out, func(a, b models.Note) int {
		return b.LastModified().Compare(a.LastModified())
	})
	return out
}

func search(notes []models.Note, query string) []models.Note {
	if strings.TrimSpace(query) == "" {
		return clone(notes)
	}
	// пробелы по краям — часть подстроки
	q := strings.ToLower(query)

	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q) ||
			strings.Contains(strings.ToLower(n.Category), q) {
			out = append(out, n)
		}
	}
	return out
}
