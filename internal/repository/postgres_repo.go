package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"

	"github.com/valeriomes/agenzia-backend/internal/model"
)

type DBConfig struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

type PostgresRepo struct {
	DB *sql.DB
}

func NewPostgresRepoFromConfig(cfg *DBConfig) (*PostgresRepo, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Pass, cfg.Name)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	// ping
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &PostgresRepo{DB: db}, nil
}

func (r *PostgresRepo) RunMigrations(ctx context.Context) error {
	queries := []string{
		`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
		`CREATE TABLE IF NOT EXISTS admins (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			username VARCHAR(100) UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS clients (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			budget DOUBLE PRECISION DEFAULT 0,
			color TEXT,
			created_at TIMESTAMPTZ DEFAULT now(),
			updated_at TIMESTAMPTZ DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT,
			email TEXT,
			role TEXT,
			status TEXT,
			hourly_rate TEXT,
			color TEXT,
			created_at TIMESTAMPTZ DEFAULT now(),
			updated_at TIMESTAMPTZ DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS activity_presets (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			hourly_rate DOUBLE PRECISION DEFAULT 0,
			color TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			name TEXT,
			status TEXT,
			priority TEXT,
			client_id TEXT,
			team_leader_id TEXT,
			start_date TIMESTAMPTZ,
			end_date TIMESTAMPTZ,
			budget DOUBLE PRECISION DEFAULT 0,
			updated_at TIMESTAMPTZ DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT,
			status TEXT,
			priority TEXT,
			client_id TEXT,
			assigned_user_id TEXT,
			project_id TEXT,
			activity_type TEXT,
			time_spent_seconds BIGINT DEFAULT 0,
			estimated_minutes BIGINT DEFAULT 0,
			due_date TIMESTAMPTZ,
			created_at TIMESTAMPTZ,
			updated_at TIMESTAMPTZ,
			cancelled_at TIMESTAMPTZ,
			approvals JSONB DEFAULT '[]'
		);`,
		`CREATE TABLE IF NOT EXISTS calendar_activities (
			id TEXT PRIMARY KEY,
			user_id TEXT,
			title TEXT,
			start_time TIMESTAMPTZ,
			end_time TIMESTAMPTZ,
			client_ids TEXT[] DEFAULT '{}',
			preset_id TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS absences (
			id TEXT PRIMARY KEY,
			user_id TEXT,
			type TEXT,
			status TEXT,
			start_date TIMESTAMPTZ,
			end_date TIMESTAMPTZ
		);`,
		`CREATE TABLE IF NOT EXISTS company_costs (
			id INT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			dirigenza DOUBLE PRECISION DEFAULT 0,
			struttura DOUBLE PRECISION DEFAULT 0,
			varie DOUBLE PRECISION DEFAULT 0,
			updated_at TIMESTAMPTZ DEFAULT now()
		);`,
	}
	for _, q := range queries {
		if _, err := r.DB.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// ---- admin auth ----

func (r *PostgresRepo) GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at
		 FROM admins WHERE username = $1 LIMIT 1`, username)

	var a model.Admin
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PostgresRepo) UpsertAdmin(ctx context.Context, username, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO admins (username, password_hash) VALUES ($1,$2)
		ON CONFLICT (username) DO UPDATE SET password_hash = $2
	`, username, passwordHash)
	return err
}

// ---- entity upserts ----

func (r *PostgresRepo) UpsertClient(ctx context.Context, c *model.Client) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO clients (id, name, budget, color, updated_at)
		VALUES ($1,$2,$3,$4, now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			budget = EXCLUDED.budget,
			color = EXCLUDED.color,
			updated_at = now()
	`, c.ID, c.Name, c.Budget, c.Color)
	return err
}

func (r *PostgresRepo) UpsertUser(ctx context.Context, u *model.User) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id, name, email, role, status, hourly_rate, color, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7, now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			role = EXCLUDED.role,
			status = EXCLUDED.status,
			hourly_rate = EXCLUDED.hourly_rate,
			color = EXCLUDED.color,
			updated_at = now()
	`, u.ID, u.Name, u.Email, u.Role, u.Status, u.HourlyRate, u.Color)
	return err
}

func (r *PostgresRepo) UpsertPreset(ctx context.Context, p *model.CalendarActivityPreset) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO activity_presets (id, name, hourly_rate, color)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			hourly_rate = EXCLUDED.hourly_rate,
			color = EXCLUDED.color
	`, p.ID, p.Name, p.HourlyRate, p.Color)
	return err
}

func (r *PostgresRepo) UpsertProject(ctx context.Context, p *model.Project) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO projects (id, name, status, priority, client_id, team_leader_id, start_date, end_date, budget, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9, now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			status = EXCLUDED.status,
			priority = EXCLUDED.priority,
			client_id = EXCLUDED.client_id,
			team_leader_id = EXCLUDED.team_leader_id,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			budget = EXCLUDED.budget,
			updated_at = now()
	`, p.ID, p.Name, p.Status, p.Priority, p.ClientID, p.TeamLeaderID,
		nullTime(p.StartDate), nullTime(p.EndDate), p.Budget)
	return err
}

func (r *PostgresRepo) UpsertTask(ctx context.Context, t *model.Task) error {
	approvals, err := json.Marshal(t.Approvals)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO tasks (
			id, title, status, priority,
			client_id, assigned_user_id, project_id, activity_type,
			time_spent_seconds, estimated_minutes,
			due_date, created_at, updated_at, cancelled_at, approvals
		) VALUES (
			$1,$2,$3,$4,
			$5,$6,$7,$8,
			$9,$10,
			$11,$12,$13,$14,$15
		)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			status = EXCLUDED.status,
			priority = EXCLUDED.priority,
			client_id = EXCLUDED.client_id,
			assigned_user_id = EXCLUDED.assigned_user_id,
			project_id = EXCLUDED.project_id,
			activity_type = EXCLUDED.activity_type,
			time_spent_seconds = EXCLUDED.time_spent_seconds,
			estimated_minutes = EXCLUDED.estimated_minutes,
			due_date = EXCLUDED.due_date,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at,
			cancelled_at = EXCLUDED.cancelled_at,
			approvals = EXCLUDED.approvals
	`,
		t.ID, t.Title, t.Status, t.Priority,
		t.ClientID, t.AssignedUserID, t.ProjectID, t.ActivityType,
		t.TimeSpentSeconds, t.EstimatedMinutes,
		nullTime(t.DueDate), nullTime(t.CreatedAt), nullTime(t.UpdatedAt), nullTime(t.CancelledAt),
		approvals,
	)
	return err
}

func (r *PostgresRepo) UpsertActivity(ctx context.Context, a *model.CalendarActivity) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO calendar_activities (id, user_id, title, start_time, end_time, client_ids, preset_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			title = EXCLUDED.title,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			client_ids = EXCLUDED.client_ids,
			preset_id = EXCLUDED.preset_id
	`, a.ID, a.UserID, a.Title, nullTime(a.StartTime), nullTime(a.EndTime),
		pq.Array(a.ClientIDs), a.PresetID)
	return err
}

func (r *PostgresRepo) UpsertAbsence(ctx context.Context, a *model.Absence) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO absences (id, user_id, type, status, start_date, end_date)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			type = EXCLUDED.type,
			status = EXCLUDED.status,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date
	`, a.ID, a.UserID, a.Type, a.Status, nullTime(a.StartDate), nullTime(a.EndDate))
	return err
}

func (r *PostgresRepo) SaveCompanyCosts(ctx context.Context, c model.CompanyCosts) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO company_costs (id, dirigenza, struttura, varie, updated_at)
		VALUES (1, $1, $2, $3, now())
		ON CONFLICT (id) DO UPDATE SET
			dirigenza = EXCLUDED.dirigenza,
			struttura = EXCLUDED.struttura,
			varie = EXCLUDED.varie,
			updated_at = now()
	`, c.Dirigenza, c.Struttura, c.Varie)
	return err
}

// ---- snapshot loading ----

// LoadSnapshot reads every entity collection in one pass. A missing or
// unreadable company_costs row is logged and replaced by zero figures so
// the pipeline keeps running with overhead 0.
func (r *PostgresRepo) LoadSnapshot(ctx context.Context) (*model.Snapshot, error) {
	snap := &model.Snapshot{}
	var err error

	if snap.Clients, err = r.ListClients(ctx); err != nil {
		return nil, err
	}
	if snap.Users, err = r.ListUsers(ctx); err != nil {
		return nil, err
	}
	if snap.Presets, err = r.ListPresets(ctx); err != nil {
		return nil, err
	}
	if snap.Projects, err = r.listProjects(ctx); err != nil {
		return nil, err
	}
	if snap.Tasks, err = r.listTasks(ctx); err != nil {
		return nil, err
	}
	if snap.Activities, err = r.listActivities(ctx); err != nil {
		return nil, err
	}
	if snap.Absences, err = r.ListAbsences(ctx); err != nil {
		return nil, err
	}

	costs, err := r.GetCompanyCosts(ctx)
	if err != nil {
		log.Println("company costs unavailable, overhead stays 0:", err)
		costs = model.CompanyCosts{}
	}
	snap.Costs = costs
	return snap, nil
}

func (r *PostgresRepo) GetCompanyCosts(ctx context.Context) (model.CompanyCosts, error) {
	var c model.CompanyCosts
	row := r.DB.QueryRowContext(ctx,
		`SELECT dirigenza, struttura, varie FROM company_costs WHERE id = 1`)
	if err := row.Scan(&c.Dirigenza, &c.Struttura, &c.Varie); err != nil {
		return model.CompanyCosts{}, err
	}
	return c, nil
}

func (r *PostgresRepo) ListClients(ctx context.Context) ([]model.Client, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, COALESCE(budget, 0), COALESCE(color, '') FROM clients ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Client
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Budget, &c.Color); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, COALESCE(name, ''), COALESCE(email, ''), COALESCE(role, ''),
		       COALESCE(status, ''), COALESCE(hourly_rate, ''), COALESCE(color, '')
		FROM users ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Status, &u.HourlyRate, &u.Color); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) ListPresets(ctx context.Context) ([]model.CalendarActivityPreset, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, COALESCE(hourly_rate, 0), COALESCE(color, '') FROM activity_presets ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CalendarActivityPreset
	for rows.Next() {
		var p model.CalendarActivityPreset
		if err := rows.Scan(&p.ID, &p.Name, &p.HourlyRate, &p.Color); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) listProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, COALESCE(name, ''), COALESCE(status, ''), COALESCE(priority, ''),
		       COALESCE(client_id, ''), COALESCE(team_leader_id, ''),
		       start_date, end_date, COALESCE(budget, 0)
		FROM projects`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Project
	for rows.Next() {
		var p model.Project
		var start, end sql.NullTime
		if err := rows.Scan(&p.ID, &p.Name, &p.Status, &p.Priority,
			&p.ClientID, &p.TeamLeaderID, &start, &end, &p.Budget); err != nil {
			return nil, err
		}
		p.StartDate = timePtr(start)
		p.EndDate = timePtr(end)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) listTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, COALESCE(title, ''), COALESCE(status, ''), COALESCE(priority, ''),
		       COALESCE(client_id, ''), COALESCE(assigned_user_id, ''),
		       COALESCE(project_id, ''), COALESCE(activity_type, ''),
		       COALESCE(time_spent_seconds, 0), COALESCE(estimated_minutes, 0),
		       due_date, created_at, updated_at, cancelled_at,
		       COALESCE(approvals, '[]')
		FROM tasks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Task
	for rows.Next() {
		var t model.Task
		var due, created, updated, cancelled sql.NullTime
		var approvals []byte
		if err := rows.Scan(&t.ID, &t.Title, &t.Status, &t.Priority,
			&t.ClientID, &t.AssignedUserID, &t.ProjectID, &t.ActivityType,
			&t.TimeSpentSeconds, &t.EstimatedMinutes,
			&due, &created, &updated, &cancelled, &approvals); err != nil {
			return nil, err
		}
		t.DueDate = timePtr(due)
		t.CreatedAt = timePtr(created)
		t.UpdatedAt = timePtr(updated)
		t.CancelledAt = timePtr(cancelled)
		if len(approvals) > 0 {
			if err := json.Unmarshal(approvals, &t.Approvals); err != nil {
				// malformed approval history degrades to "never approved"
				t.Approvals = nil
			}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) listActivities(ctx context.Context) ([]model.CalendarActivity, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, COALESCE(user_id, ''), COALESCE(title, ''),
		       start_time, end_time, COALESCE(client_ids, '{}'), COALESCE(preset_id, '')
		FROM calendar_activities`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CalendarActivity
	for rows.Next() {
		var a model.CalendarActivity
		var start, end sql.NullTime
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title,
			&start, &end, pq.Array(&a.ClientIDs), &a.PresetID); err != nil {
			return nil, err
		}
		a.StartTime = timePtr(start)
		a.EndTime = timePtr(end)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) ListAbsences(ctx context.Context) ([]model.Absence, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, COALESCE(user_id, ''), COALESCE(type, ''), COALESCE(status, ''),
		       start_date, end_date
		FROM absences`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Absence
	for rows.Next() {
		var a model.Absence
		var start, end sql.NullTime
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Status, &start, &end); err != nil {
			return nil, err
		}
		a.StartDate = timePtr(start)
		a.EndDate = timePtr(end)
		out = append(out, a)
	}
	return out, rows.Err()
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
