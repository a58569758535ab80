package kv

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/woogihooni/exmJo/internal/domain/entity"
	"github.com/woogihooni/exmJo/internal/domain/repository"
	apperrors "github.com/woogihooni/exmJo/internal/pkg/errors"
)

// Ключи документов в хранилище (к ним добавляется префикс)
const (
	FlagsKey       = "checked_questions"
	AnnotationsKey = "question_notes"
	ResumeKey      = "quiz_progress"
)

// ReviewRepo реализует repository.ReviewRepository.
// Отметки и заметки хранятся двумя JSON-объектами, каждый под своим ключом.
// Документы читаются из хранилища один раз и дальше держатся в памяти.
type ReviewRepo struct {
	store  repository.KeyValueStore
	prefix string

	mu          sync.Mutex
	flags       map[string]bool
	annotations map[string]string
}

// NewReviewRepo создает репозиторий отметок и заметок
func NewReviewRepo(store repository.KeyValueStore, prefix string) *ReviewRepo {
	return &ReviewRepo{store: store, prefix: prefix}
}

// IsFlagged проверяет, отмечен ли вопрос
func (r *ReviewRepo) IsFlagged(id entity.Identity) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	flags, err := r.loadFlags()
	if err != nil {
		log.Printf("[ReviewRepo] WARNING: не удалось прочитать отметки: %v", err)
		return false
	}
	return flags[id.Key()]
}

// SetFlag ставит или снимает отметку и сразу сохраняет документ
func (r *ReviewRepo) SetFlag(id entity.Identity, flagged bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	flags, err := r.loadFlags()
	if err != nil {
		return err
	}

	key := id.Key()
	if flags[key] == flagged {
		return nil
	}

	next := copyFlags(flags)
	if flagged {
		next[key] = true
	} else {
		delete(next, key)
	}
	if err := r.save(FlagsKey, next); err != nil {
		return err
	}
	r.flags = next
	return nil
}

// Flags возвращает копию отмеченных ключей
func (r *ReviewRepo) Flags() map[string]bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	flags, err := r.loadFlags()
	if err != nil {
		log.Printf("[ReviewRepo] WARNING: не удалось прочитать отметки: %v", err)
		return map[string]bool{}
	}
	return copyFlags(flags)
}

// Annotation возвращает заметку к вопросу или пустую строку
func (r *ReviewRepo) Annotation(id entity.Identity) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	notes, err := r.loadAnnotations()
	if err != nil {
		log.Printf("[ReviewRepo] WARNING: не удалось прочитать заметки: %v", err)
		return ""
	}
	return notes[id.Key()]
}

// SetAnnotation сохраняет заметку. Текст обрезается по краям, пустой удаляет заметку.
func (r *ReviewRepo) SetAnnotation(id entity.Identity, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	notes, err := r.loadAnnotations()
	if err != nil {
		return err
	}

	key := id.Key()
	text = strings.TrimSpace(text)
	current, exists := notes[key]
	if (text == "" && !exists) || (exists && current == text) {
		return nil
	}

	next := copyAnnotations(notes)
	if text == "" {
		delete(next, key)
	} else {
		next[key] = text
	}
	if err := r.save(AnnotationsKey, next); err != nil {
		return err
	}
	r.annotations = next
	return nil
}

// Annotations возвращает копию всех заметок
func (r *ReviewRepo) Annotations() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	notes, err := r.loadAnnotations()
	if err != nil {
		log.Printf("[ReviewRepo] WARNING: не удалось прочитать заметки: %v", err)
		return map[string]string{}
	}
	return copyAnnotations(notes)
}

// loadFlags читает документ отметок. Ошибка возвращается только при сбое хранилища;
// поврежденный JSON заменяется пустым набором.
func (r *ReviewRepo) loadFlags() (map[string]bool, error) {
	if r.flags != nil {
		return r.flags, nil
	}
	flags := make(map[string]bool)
	if err := r.load(FlagsKey, &flags); err != nil {
		return nil, err
	}
	if flags == nil {
		flags = make(map[string]bool)
	}
	for key, v := range flags {
		if !v {
			delete(flags, key)
		}
	}
	r.flags = flags
	return r.flags, nil
}

func (r *ReviewRepo) loadAnnotations() (map[string]string, error) {
	if r.annotations != nil {
		return r.annotations, nil
	}
	notes := make(map[string]string)
	if err := r.load(AnnotationsKey, &notes); err != nil {
		return nil, err
	}
	if notes == nil {
		notes = make(map[string]string)
	}
	for key, v := range notes {
		if strings.TrimSpace(v) == "" {
			delete(notes, key)
		}
	}
	r.annotations = notes
	return r.annotations, nil
}

// load декодирует документ в dest (map). Отсутствие ключа и мусор оставляют dest пустым.
func (r *ReviewRepo) load(name string, dest interface{}) error {
	raw, err := r.store.Get(r.prefix + name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Printf("[ReviewRepo] WARNING: документ %s поврежден, считаем его пустым: %v", name, err)
		resetMap(dest)
	}
	return nil
}

func (r *ReviewRepo) save(name string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := r.store.Set(r.prefix+name, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func resetMap(dest interface{}) {
	switch m := dest.(type) {
	case *map[string]bool:
		*m = make(map[string]bool)
	case *map[string]string:
		*m = make(map[string]string)
	}
}

func copyFlags(src map[string]bool) map[string]bool {
	dst := make(map[string]bool, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func copyAnnotations(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
