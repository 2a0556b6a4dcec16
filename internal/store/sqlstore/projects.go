package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ShayCichocki/shikabom/internal/store"
	"github.com/ShayCichocki/shikabom/pkg/models"
)

// ListProjects returns every project name in alphabetical order.
func (db *DB) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT project_name FROM projects ORDER BY project_name")
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := []models.Project{}
	for rows.Next() {
		p := models.Project{Parts: []models.ProjectComponent{}}
		if err := rows.Scan(&p.Name); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return out, nil
}

// CreateProject inserts an empty project.
func (db *DB) CreateProject(ctx context.Context, name string) error {
	name, err := store.ValidateProjectName(name)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	if _, err := db.conn.ExecContext(ctx, db.q("INSERT INTO projects (project_name) VALUES (?)"), name); err != nil {
		return fmt.Errorf("create project %s: %w", name, db.classify(err))
	}
	return nil
}

func (db *DB) projectExists(ctx context.Context, name string) (bool, error) {
	return db.exists(ctx, "SELECT 1 FROM projects WHERE project_name = ?", name)
}

// GetProject returns a project with its BOM lines and joined part rows.
func (db *DB) GetProject(ctx context.Context, name string) (*models.Project, error) {
	ok, err := db.projectExists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", name, err)
	}
	if !ok {
		return nil, fmt.Errorf("get project %s: %w", name, store.ErrNotFound)
	}

	rows, err := db.conn.QueryContext(ctx, db.q(`
		SELECT pc.partnumber, pc.designators, pc.qty,
			v.total_qty, v.manufacturer, v.description, v.label, v.package, v.value, v.tolerance
		FROM project_components pc
		JOIN big_part_view v ON v.partnumber = pc.partnumber
		WHERE pc.project_name = ?
		ORDER BY pc.partnumber
	`), name)
	if err != nil {
		return nil, fmt.Errorf("get project %s components: %w", name, err)
	}
	defer rows.Close()

	proj := &models.Project{Name: name, Parts: []models.ProjectComponent{}}
	for rows.Next() {
		var (
			c                                       models.ProjectComponent
			mfg, desc, label, pkg, value, tolerance sql.NullString
		)
		if err := rows.Scan(&c.PartNumber, &c.Designators, &c.Qty,
			&c.PartInfo.TotalQty, &mfg, &desc, &label, &pkg, &value, &tolerance); err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		c.PartInfo.PartNumber = c.PartNumber
		c.PartInfo.Manufacturer = mfg.String
		c.PartInfo.Description = desc.String
		c.PartInfo.Label = label.String
		c.PartInfo.Package = pkg.String
		c.PartInfo.Value = value.String
		c.PartInfo.Tolerance = tolerance.String
		proj.Parts = append(proj.Parts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate components: %w", err)
	}
	return proj, nil
}

// ListPartsNotInProject returns the part numbers that are not yet on the BOM.
func (db *DB) ListPartsNotInProject(ctx context.Context, name string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, db.q(`
		SELECT partnumber FROM parts
		WHERE partnumber NOT IN (
			SELECT partnumber FROM project_components WHERE project_name = ?
		)
		ORDER BY partnumber
	`), name)
	if err != nil {
		return nil, fmt.Errorf("list parts not in %s: %w", name, err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var pn string
		if err := rows.Scan(&pn); err != nil {
			return nil, fmt.Errorf("scan part number: %w", err)
		}
		out = append(out, pn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate part numbers: %w", err)
	}
	return out, nil
}

// AddComponent appends a BOM line to a project.
func (db *DB) AddComponent(ctx context.Context, project string, c models.ProjectComponent) error {
	if err := store.ValidateComponent(&c); err != nil {
		return fmt.Errorf("add component: %w", err)
	}
	ok, err := db.projectExists(ctx, project)
	if err != nil {
		return fmt.Errorf("add component to %s: %w", project, err)
	}
	if !ok {
		return fmt.Errorf("add component to %s: project %w", project, store.ErrNotFound)
	}
	if ok, err = db.partExists(ctx, c.PartNumber); err != nil {
		return fmt.Errorf("add component to %s: %w", project, err)
	} else if !ok {
		return fmt.Errorf("add component to %s: part %s %w", project, c.PartNumber, store.ErrNotFound)
	}

	_, err = db.conn.ExecContext(ctx, db.q(`
		INSERT INTO project_components (project_name, partnumber, designators, qty)
		VALUES (?, ?, ?, ?)
	`), project, c.PartNumber, c.Designators, c.Qty)
	if err != nil {
		return fmt.Errorf("add component %s to %s: %w", c.PartNumber, project, db.classify(err))
	}
	return nil
}
