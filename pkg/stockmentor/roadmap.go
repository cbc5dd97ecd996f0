package stockmentor

import (
	"database/sql"
	"encoding/json"
	"slices"
)

// GetRoadmap returns every learning step in curriculum order.
func (c *Core) GetRoadmap() ([]RoadmapStep, error) {
	rows, err := c.db.Query(`
		SELECT id, step_order, title, description, resources
		FROM roadmap_steps ORDER BY step_order
	`)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "query roadmap", err)
	}
	defer rows.Close()

	steps := []RoadmapStep{}
	for rows.Next() {
		step, err := scanRoadmapStep(rows.Scan)
		if err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan roadmap step", err)
		}
		steps = append(steps, *step)
	}
	return steps, rows.Err()
}

// GetRoadmapStep looks up a single step by id.
func (c *Core) GetRoadmapStep(id int64) (*RoadmapStep, error) {
	row := c.db.QueryRow(`
		SELECT id, step_order, title, description, resources
		FROM roadmap_steps WHERE id = ?
	`, id)
	step, err := scanRoadmapStep(row.Scan)
	if err == sql.ErrNoRows {
		return nil, NewError(ErrCodeNotFound, "roadmap step not found")
	}
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "scan roadmap step", err)
	}
	return step, nil
}

// SetRoadmapProgress marks a step completed or not for the user and
// returns the updated set of completed step ids.
func (c *Core) SetRoadmapProgress(userID, stepID int64, completed bool) ([]int64, error) {
	if _, err := c.GetRoadmapStep(stepID); err != nil {
		return nil, err
	}

	user, err := c.GetUser(userID)
	if err != nil {
		return nil, err
	}

	progress := user.RoadmapProgress
	idx := slices.Index(progress, stepID)
	if completed && idx < 0 {
		progress = append(progress, stepID)
		slices.Sort(progress)
	} else if !completed && idx >= 0 {
		progress = slices.Delete(progress, idx, idx+1)
	}

	encoded, err := json.Marshal(progress)
	if err != nil {
		return nil, WrapError(ErrCodeInternal, "encode roadmap progress", err)
	}
	if _, err := c.db.Exec("UPDATE users SET roadmap_progress = ? WHERE id = ?", string(encoded), userID); err != nil {
		return nil, WrapError(ErrCodeDatabase, "update roadmap progress", err)
	}
	return progress, nil
}

func scanRoadmapStep(scan func(...any) error) (*RoadmapStep, error) {
	var step RoadmapStep
	var resources string
	if err := scan(&step.ID, &step.Order, &step.Title, &step.Description, &resources); err != nil {
		return nil, err
	}
	if resources != "" {
		if err := json.Unmarshal([]byte(resources), &step.Resources); err != nil {
			return nil, WrapError(ErrCodeInternal, "decode roadmap resources", err)
		}
	}
	if step.Resources == nil {
		step.Resources = []RoadmapResource{}
	}
	return &step, nil
}
