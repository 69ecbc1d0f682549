package store

import (
	"context"
	"fmt"

	"github.com/anand-106/coursegen/ent"
	entcourse "github.com/anand-106/coursegen/ent/course"
)

// courseRepo implements CourseRepo backed by ent.
type courseRepo struct {
	client *ent.Client
}

func (r *courseRepo) Save(ctx context.Context, rec *CourseRecord) error {
	existing, err := r.client.Course.Query().
		Where(entcourse.CourseID(rec.ID)).
		Only(ctx)
	switch {
	case ent.IsNotFound(err):
		_, err = r.client.Course.Create().
			SetCourseID(rec.ID).
			SetPrompt(rec.Prompt).
			SetTitle(rec.Title).
			SetTopics(rec.Topics).
			SetPendingTopics(rec.PendingTopics).
			SetModules(rec.Modules).
			Save(ctx)
		if err != nil {
			return fmt.Errorf("create course: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("query course: %w", err)
	}

	_, err = existing.Update().
		SetTitle(rec.Title).
		SetTopics(rec.Topics).
		SetPendingTopics(rec.PendingTopics).
		SetModules(rec.Modules).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

func (r *courseRepo) Get(ctx context.Context, id string) (*CourseRecord, error) {
	row, err := r.client.Course.Query().
		Where(entcourse.CourseID(id)).
		Only(ctx)
	if ent.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query course: %w", err)
	}
	return recordFromRow(row), nil
}

func (r *courseRepo) List(ctx context.Context) ([]*CourseRecord, error) {
	rows, err := r.client.Course.Query().
		Order(ent.Desc(entcourse.FieldCreatedAt)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	recs := make([]*CourseRecord, len(rows))
	for i, row := range rows {
		recs[i] = recordFromRow(row)
	}
	return recs, nil
}

func recordFromRow(row *ent.Course) *CourseRecord {
	return &CourseRecord{
		ID:            row.CourseID,
		Prompt:        row.Prompt,
		Title:         row.Title,
		Topics:        row.Topics,
		PendingTopics: row.PendingTopics,
		Modules:       row.Modules,
		CreatedAt:     row.CreatedAt,
	}
}
