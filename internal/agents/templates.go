package agents

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/lector/pkg/repository"
)

// StoredTemplate is a named agent preset persisted in the settings store.
// Presets are seeded by migration and instantiated into the registry;
// instantiation copies fields, so editing an agent never writes back.
type StoredTemplate struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Prompt   string    `json:"prompt"`
	Model    string    `json:"model"`
	Position int       `json:"position"`
}

// Template converts the stored preset into an instantiation template.
func (t *StoredTemplate) Template() Template {
	return Template{
		Name:   t.Name,
		Prompt: t.Prompt,
		Model:  t.Model,
	}
}

// TemplateSystem defines read access to stored agent presets.
type TemplateSystem interface {
	List(ctx context.Context) ([]StoredTemplate, error)
	Find(ctx context.Context, id uuid.UUID) (*StoredTemplate, error)
}

type templateRepo struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewTemplates creates a template repository over the settings database.
func NewTemplates(db *sql.DB, logger *slog.Logger) TemplateSystem {
	return &templateRepo{
		db:     db,
		logger: logger.With("system", "templates"),
	}
}

func (r *templateRepo) List(ctx context.Context) ([]StoredTemplate, error) {
	const query = `
		SELECT id, name, prompt, model, position
		FROM agent_templates
		ORDER BY position`

	return repository.QueryMany(ctx, r.db, query, nil, scanTemplate)
}

func (r *templateRepo) Find(ctx context.Context, id uuid.UUID) (*StoredTemplate, error) {
	const query = `
		SELECT id, name, prompt, model, position
		FROM agent_templates
		WHERE id = ?`

	template, err := repository.QueryOne(ctx, r.db, query, []any{id.String()}, scanTemplate)
	if err != nil {
		return nil, repository.MapError(err, ErrTemplateNotFound, err)
	}

	return &template, nil
}

func scanTemplate(s repository.Scanner) (StoredTemplate, error) {
	var (
		t     StoredTemplate
		rawID string
	)

	if err := s.Scan(&rawID, &t.Name, &t.Prompt, &t.Model, &t.Position); err != nil {
		return t, err
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return t, err
	}

	t.ID = id
	return t, nil
}
