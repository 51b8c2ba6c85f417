package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/matejkriz/bookpress/internal/template"
)

// TemplateRepository provides PostgreSQL-backed storage for custom layout
// templates, including AI-suggested ones.
type TemplateRepository struct {
	pool *Pool
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(pool *Pool) *TemplateRepository {
	return &TemplateRepository{pool: pool}
}

func (r *TemplateRepository) SaveCustomTemplate(ctx context.Context, tmpl template.Template) error {
	tx, err := r.pool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save template begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO custom_templates (id, name, category, created_by, created_at) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, category = EXCLUDED.category, created_by = EXCLUDED.created_by`,
		tmpl.ID, tmpl.Name, string(tmpl.Category), tmpl.CreatedBy, time.Now()); err != nil {
		return fmt.Errorf("save template: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM template_regions WHERE template_id = $1`, tmpl.ID); err != nil {
		return fmt.Errorf("clear template regions: %w", err)
	}

	for i, reg := range tmpl.Regions {
		var rx, ry *float64
		if reg.Radius != nil {
			rx, ry = &reg.Radius.RX, &reg.Radius.RY
		}
		// Polygon points are stored as parallel coordinate arrays.
		xs := make([]float64, len(reg.Points))
		ys := make([]float64, len(reg.Points))
		for j, p := range reg.Points {
			xs[j], ys[j] = p[0], p[1]
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO template_regions
			 (template_id, region_index, region_id, shape, bounds_x, bounds_y, bounds_w, bounds_h, radius_rx, radius_ry, points_x, points_y, path, z_index, rotation)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			tmpl.ID, i, reg.ID, string(reg.Shape),
			reg.Bounds.X, reg.Bounds.Y, reg.Bounds.Width, reg.Bounds.Height,
			rx, ry, pq.Array(xs), pq.Array(ys), reg.Path, reg.ZIndex, reg.Rotation); err != nil {
			return fmt.Errorf("save region %s: %w", reg.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save template commit: %w", err)
	}
	return nil
}

func (r *TemplateRepository) ListCustomTemplates(ctx context.Context) ([]template.Template, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, category, created_by FROM custom_templates ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []template.Template
	index := make(map[string]int)
	for rows.Next() {
		var t template.Template
		var category string
		if err := rows.Scan(&t.ID, &t.Name, &category, &t.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		t.Category = template.Category(category)
		t.IsCustom = true
		index[t.ID] = len(templates)
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}
	if len(templates) == 0 {
		return nil, nil
	}

	regRows, err := r.pool.Query(ctx,
		`SELECT template_id, region_id, shape, bounds_x, bounds_y, bounds_w, bounds_h, radius_rx, radius_ry, points_x, points_y, path, z_index, rotation
		 FROM template_regions ORDER BY template_id, region_index`)
	if err != nil {
		return nil, fmt.Errorf("list template regions: %w", err)
	}
	defer regRows.Close()

	for regRows.Next() {
		var templateID, shape string
		var reg template.Region
		var rx, ry *float64
		var xs, ys pq.Float64Array
		if err := regRows.Scan(&templateID, &reg.ID, &shape,
			&reg.Bounds.X, &reg.Bounds.Y, &reg.Bounds.Width, &reg.Bounds.Height,
			&rx, &ry, &xs, &ys, &reg.Path, &reg.ZIndex, &reg.Rotation); err != nil {
			return nil, fmt.Errorf("scan template region: %w", err)
		}
		reg.Shape = template.Shape(shape)
		if rx != nil && ry != nil {
			reg.Radius = &template.Radius{RX: *rx, RY: *ry}
		}
		for j := range xs {
			reg.Points = append(reg.Points, template.Point{xs[j], ys[j]})
		}

		i, ok := index[templateID]
		if !ok {
			continue
		}
		templates[i].Regions = append(templates[i].Regions, reg)
	}
	if err := regRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate template regions: %w", err)
	}

	for i := range templates {
		templates[i].PhotoCount = len(templates[i].Regions)
	}
	return templates, nil
}

func (r *TemplateRepository) DeleteCustomTemplate(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM custom_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}
