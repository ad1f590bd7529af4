package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/escrow-api/models"
)

// psql renders $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const userColumns = `id, email, password_hash, name, user_type, avatar, bio, location, skills,
	hourly_rate, is_verified, is_online, last_seen, rating, review_count, created_at, updated_at`

const freelancerColumns = `id, name, avatar, bio, location, skills, hourly_rate, rating,
	review_count, is_verified, is_online, last_seen, created_at`

// jobColumns selects a job aliased as j joined with its owner aliased as u.
const jobColumns = `j.id, j.user_id, j.title, j.description, j.budget, j.min_budget, j.max_budget,
	j.budget_type, j.duration, j.category, j.location, j.tags, j.status, j.is_featured,
	j.view_count, j.created_at, j.updated_at,
	u.id, u.name, u.avatar, u.is_verified, u.rating,
	(SELECT COUNT(*) FROM proposals p WHERE p.job_id = j.id) AS proposal_count`

const proposalColumns = `p.id, p.job_id, p.freelancer_id, p.cover_letter, p.bid_amount, p.status, p.created_at,
	u.id, u.name, u.avatar, u.is_verified, u.rating`

const (
	createUser = `INSERT INTO users (email, password_hash, name, user_type, avatar, bio, location, skills, hourly_rate)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING ` + userColumns

	findUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	findUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	findFreelancerByID = `SELECT ` + freelancerColumns + ` FROM users WHERE id = $1 AND user_type = 'freelancer'`

	countUserActivity = `SELECT
	(SELECT COUNT(*) FROM jobs WHERE user_id = $1),
	(SELECT COUNT(*) FROM proposals WHERE freelancer_id = $1)`

	setUserPresence = `UPDATE users SET is_online = $1, last_seen = $2 WHERE id = $3`

	markStaleUsersOffline = `UPDATE users SET is_online = FALSE
	WHERE is_online AND (last_seen IS NULL OR last_seen < $1)`

	createJob = `WITH j AS (
		INSERT INTO jobs (user_id, title, description, budget, min_budget, max_budget, budget_type,
			duration, category, location, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING *
	)
	SELECT ` + jobColumns + ` FROM j JOIN users u ON u.id = j.user_id`

	findJobByID = `SELECT ` + jobColumns + ` FROM jobs j JOIN users u ON u.id = j.user_id WHERE j.id = $1`

	incrementJobViews = `WITH j AS (
		UPDATE jobs SET view_count = view_count + 1 WHERE id = $1 RETURNING *
	)
	SELECT ` + jobColumns + ` FROM j JOIN users u ON u.id = j.user_id`

	deleteJob = `DELETE FROM jobs WHERE id = $1`

	listJobCategories = `SELECT category, COUNT(*) FROM jobs
	WHERE category IS NOT NULL AND category <> ''
	GROUP BY category
	ORDER BY COUNT(*) DESC, category ASC`

	createProposal = `WITH p AS (
		INSERT INTO proposals (job_id, freelancer_id, cover_letter, bid_amount)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	)
	SELECT ` + proposalColumns + ` FROM p JOIN users u ON u.id = p.freelancer_id`

	listProposalsByJob = `SELECT ` + proposalColumns + ` FROM proposals p
	JOIN users u ON u.id = p.freelancer_id
	WHERE p.job_id = $1
	ORDER BY p.created_at DESC, p.id DESC`
)

// jobSortColumns whitelists the sortBy values accepted by GET /api/jobs.
var jobSortColumns = map[string]string{
	"createdAt": "j.created_at",
	"updatedAt": "j.updated_at",
	"budget":    "j.budget",
	"viewCount": "j.view_count",
	"title":     "j.title",
}

// jobOrderBy resolves sortBy/sortOrder, falling back to newest first.
func jobOrderBy(sortBy, sortOrder string) []string {
	col, ok := jobSortColumns[sortBy]
	if !ok {
		col = jobSortColumns["createdAt"]
	}
	dir := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		dir = "ASC"
	}
	return []string{col + " " + dir, "j.id " + dir}
}

// likePattern wraps s for a substring ILIKE match, escaping the wildcards
// the caller typed.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func jobFilterConditions(f models.JobFilter) sq.And {
	conds := sq.And{}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := likePattern(s)
		conds = append(conds, sq.Or{
			sq.ILike{"j.title": p},
			sq.ILike{"j.description": p},
			sq.Expr("j.tags::text ILIKE ?", p),
		})
	}
	if f.Category != "" {
		conds = append(conds, sq.Eq{"j.category": f.Category})
	}
	if f.Location != "" {
		conds = append(conds, sq.ILike{"j.location": likePattern(f.Location)})
	}
	if f.MinBudget != nil {
		conds = append(conds, sq.GtOrEq{"j.budget": *f.MinBudget})
	}
	if f.MaxBudget != nil {
		conds = append(conds, sq.LtOrEq{"j.budget": *f.MaxBudget})
	}
	if f.Status != "" {
		conds = append(conds, sq.Eq{"j.status": string(f.Status)})
	}
	if f.FeaturedOnly {
		conds = append(conds, sq.Eq{"j.is_featured": true})
	}
	return conds
}

func buildCountJobsQuery(f models.JobFilter) (string, []any, error) {
	b := psql.Select("COUNT(*)").From("jobs j")
	if conds := jobFilterConditions(f); len(conds) > 0 {
		b = b.Where(conds)
	}

	q, args, err := b.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return q, args, nil
}

func buildListJobsQuery(f models.JobFilter) (string, []any, error) {
	page := f.PageRequest.Normalize()
	b := psql.Select(jobColumns).
		From("jobs j").
		Join("users u ON u.id = j.user_id")
	if conds := jobFilterConditions(f); len(conds) > 0 {
		b = b.Where(conds)
	}

	q, args, err := b.OrderBy(jobOrderBy(f.SortBy, f.SortOrder)...).
		Limit(uint64(page.Limit)).
		Offset(page.Offset()).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return q, args, nil
}

func buildListJobsByOwnerQuery(ownerID int64, status models.JobStatus) (string, []any, error) {
	b := psql.Select(jobColumns).
		From("jobs j").
		Join("users u ON u.id = j.user_id").
		Where(sq.Eq{"j.user_id": ownerID})
	if status != "" {
		b = b.Where(sq.Eq{"j.status": string(status)})
	}

	q, args, err := b.OrderBy("j.created_at DESC", "j.id DESC").ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return q, args, nil
}

// buildUpdateJobQuery renders an UPDATE touching only the non-nil fields of
// update and returning the job in list shape.
func buildUpdateJobQuery(id int64, update models.JobUpdate) (string, []any, error) {
	b := psql.Update("jobs").Set("updated_at", sq.Expr("NOW()"))
	if update.Title != nil {
		b = b.Set("title", *update.Title)
	}
	if update.Description != nil {
		b = b.Set("description", *update.Description)
	}
	if update.Budget != nil {
		b = b.Set("budget", *update.Budget)
	}
	if update.MinBudget != nil {
		b = b.Set("min_budget", *update.MinBudget)
	}
	if update.MaxBudget != nil {
		b = b.Set("max_budget", *update.MaxBudget)
	}
	if update.BudgetType != nil {
		b = b.Set("budget_type", string(*update.BudgetType))
	}
	if update.Duration != nil {
		b = b.Set("duration", *update.Duration)
	}
	if update.Category != nil {
		b = b.Set("category", *update.Category)
	}
	if update.Location != nil {
		b = b.Set("location", *update.Location)
	}
	if update.Tags != nil {
		b = b.Set("tags", update.Tags)
	}
	if update.Status != nil {
		b = b.Set("status", string(*update.Status))
	}

	upd, args, err := b.Where(sq.Eq{"id": id}).Suffix("RETURNING *").ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	q := "WITH j AS (" + upd + ") SELECT " + jobColumns + " FROM j JOIN users u ON u.id = j.user_id"
	return q, args, nil
}

// buildUpdateProfileQuery renders an UPDATE touching only the non-nil fields
// of update.
func buildUpdateProfileQuery(id int64, update models.ProfileUpdate) (string, []any, error) {
	b := psql.Update("users").Set("updated_at", sq.Expr("NOW()"))
	if update.Name != nil {
		b = b.Set("name", *update.Name)
	}
	if update.Bio != nil {
		b = b.Set("bio", *update.Bio)
	}
	if update.Location != nil {
		b = b.Set("location", *update.Location)
	}
	if update.Avatar != nil {
		b = b.Set("avatar", *update.Avatar)
	}
	if update.Skills != nil {
		b = b.Set("skills", update.Skills)
	}
	if update.HourlyRate != nil {
		b = b.Set("hourly_rate", *update.HourlyRate)
	}

	q, args, err := b.Where(sq.Eq{"id": id}).Suffix("RETURNING " + userColumns).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return q, args, nil
}

func freelancerFilterConditions(f models.FreelancerFilter) sq.And {
	conds := sq.And{sq.Eq{"user_type": string(models.UserTypeFreelancer)}}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := likePattern(s)
		conds = append(conds, sq.Or{
			sq.ILike{"name": p},
			sq.ILike{"bio": p},
			sq.Expr("skills::text ILIKE ?", p),
		})
	}
	if len(f.Skills) > 0 {
		anySkill := sq.Or{}
		for _, skill := range f.Skills {
			anySkill = append(anySkill, sq.Expr(
				"EXISTS (SELECT 1 FROM jsonb_array_elements_text(skills) AS s(skill) WHERE s.skill ILIKE ?)",
				likePattern(skill),
			))
		}
		conds = append(conds, anySkill)
	}
	if f.Location != "" {
		conds = append(conds, sq.ILike{"location": likePattern(f.Location)})
	}
	if f.MinRating != nil {
		conds = append(conds, sq.GtOrEq{"rating": *f.MinRating})
	}
	if f.MaxHourlyRate != nil {
		conds = append(conds, sq.LtOrEq{"hourly_rate": *f.MaxHourlyRate})
	}
	if f.VerifiedOnly {
		conds = append(conds, sq.Eq{"is_verified": true})
	}
	return conds
}

func buildCountFreelancersQuery(f models.FreelancerFilter) (string, []any, error) {
	q, args, err := psql.Select("COUNT(*)").
		From("users").
		Where(freelancerFilterConditions(f)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return q, args, nil
}

func buildListFreelancersQuery(f models.FreelancerFilter) (string, []any, error) {
	page := f.PageRequest.Normalize()
	q, args, err := psql.Select(freelancerColumns).
		From("users").
		Where(freelancerFilterConditions(f)).
		OrderBy("rating DESC", "id ASC").
		Limit(uint64(page.Limit)).
		Offset(page.Offset()).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return q, args, nil
}
