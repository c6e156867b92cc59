package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/pitchfund/internal/model"
)

type BusinessRepository struct {
	db DBTX
}

func NewBusinessRepository(db DBTX) *BusinessRepository {
	return &BusinessRepository{db: db}
}

const businessColumns = `id, title, tagline, description, category, location,
	funding_goal, current_funding, min_investment, backers, team_size,
	website, social_media, entrepreneur_name, business_plan,
	financial_projections, market_analysis, competitive_advantage, use_of_funds,
	created_at, updated_at`

var sortColumns = map[model.SortKey]string{
	model.SortFunding:  "b.current_funding DESC",
	model.SortGoal:     "b.funding_goal DESC",
	model.SortTrending: "b.backers DESC",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildListQuery returns the listing SQL and its arguments.
func buildListQuery(f model.ListFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("b.category = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+likeEscaper.Replace(f.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(b.title ILIKE $%d OR b.description ILIKE $%d)", n, n))
	}

	order, ok := sortColumns[f.SortBy]
	if !ok {
		order = sortColumns[model.SortTrending]
	}

	var sb strings.Builder
	sb.WriteString(`SELECT b.id, b.title, b.description, b.category, b.location,
	b.funding_goal, b.current_funding, b.backers, b.min_investment,
	(SELECT i.image FROM business_images i
		WHERE i.business_id = b.id
		ORDER BY i.sort_order, i.id
		LIMIT 1) AS cover_image
FROM businesses b`)
	if len(conds) > 0 {
		sb.WriteString("\nWHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	sb.WriteString("\nORDER BY ")
	sb.WriteString(order)
	sb.WriteString(", b.id")

	return sb.String(), args
}

func (r *BusinessRepository) List(ctx context.Context, f model.ListFilter) ([]model.BusinessSummary, error) {
	query, args := buildListQuery(f)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing businesses: %w", err)
	}
	defer rows.Close()

	items := []model.BusinessSummary{}
	for rows.Next() {
		var s model.BusinessSummary
		if err := rows.Scan(
			&s.ID, &s.Title, &s.Description, &s.Category, &s.Location,
			&s.FundingGoal, &s.CurrentFunding, &s.Backers, &s.MinInvestment,
			&s.CoverImage,
		); err != nil {
			return nil, fmt.Errorf("scanning business summary: %w", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing businesses: %w", err)
	}

	return items, nil
}

func scanBusiness(row pgx.Row, b *model.Business) error {
	return row.Scan(
		&b.ID, &b.Title, &b.Tagline, &b.Description, &b.Category, &b.Location,
		&b.FundingGoal, &b.CurrentFunding, &b.MinInvestment, &b.Backers, &b.TeamSize,
		&b.Website, &b.SocialMedia, &b.EntrepreneurName, &b.BusinessPlan,
		&b.FinancialProjections, &b.MarketAnalysis, &b.CompetitiveAdvantage, &b.UseOfFunds,
		&b.CreatedAt, &b.UpdatedAt,
	)
}

// GetByID returns the business with its media or model.ErrBusinessNotFound.
func (r *BusinessRepository) GetByID(ctx context.Context, id int64) (*model.BusinessDetail, error) {
	return getDetail(ctx, r.db, id)
}

func getDetail(ctx context.Context, q querier, id int64) (*model.BusinessDetail, error) {
	var d model.BusinessDetail

	err := scanBusiness(q.QueryRow(ctx, `SELECT `+businessColumns+` FROM businesses WHERE id = $1`, id), &d.Business)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("getting business %d: %w", id, err)
	}

	if d.Images, err = listImages(ctx, q, id); err != nil {
		return nil, err
	}
	if d.Videos, err = listVideos(ctx, q, id); err != nil {
		return nil, err
	}
	if d.Documents, err = listDocuments(ctx, q, id); err != nil {
		return nil, err
	}

	return &d, nil
}

func listImages(ctx context.Context, q querier, businessID int64) ([]model.BusinessImage, error) {
	rows, err := q.Query(ctx, `SELECT id, business_id, image, sort_order
FROM business_images WHERE business_id = $1 ORDER BY sort_order, id`, businessID)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}

	images, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.BusinessImage, error) {
		var img model.BusinessImage
		err := row.Scan(&img.ID, &img.BusinessID, &img.Image, &img.Order)
		return img, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning images: %w", err)
	}
	return images, nil
}

func listVideos(ctx context.Context, q querier, businessID int64) ([]model.BusinessVideo, error) {
	rows, err := q.Query(ctx, `SELECT id, business_id, title, video_file, thumbnail, duration
FROM business_videos WHERE business_id = $1 ORDER BY id`, businessID)
	if err != nil {
		return nil, fmt.Errorf("listing videos: %w", err)
	}

	videos, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.BusinessVideo, error) {
		var v model.BusinessVideo
		err := row.Scan(&v.ID, &v.BusinessID, &v.Title, &v.VideoFile, &v.Thumbnail, &v.Duration)
		return v, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning videos: %w", err)
	}
	return videos, nil
}

func listDocuments(ctx context.Context, q querier, businessID int64) ([]model.BusinessDocument, error) {
	rows, err := q.Query(ctx, `SELECT id, business_id, name, document_file, size
FROM business_documents WHERE business_id = $1 ORDER BY id`, businessID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	docs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.BusinessDocument, error) {
		var d model.BusinessDocument
		err := row.Scan(&d.ID, &d.BusinessID, &d.Name, &d.DocumentFile, &d.Size)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning documents: %w", err)
	}
	return docs, nil
}

// CreatePitch stores the business and its media in one transaction.
func (r *BusinessRepository) CreatePitch(ctx context.Context, p model.NewPitch) (detail *model.BusinessDetail, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning pitch transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	b := p.Business
	var id int64
	err = tx.QueryRow(ctx, `INSERT INTO businesses (
	title, tagline, description, category, location,
	funding_goal, current_funding, min_investment, team_size,
	website, social_media, entrepreneur_name, business_plan,
	financial_projections, market_analysis, competitive_advantage, use_of_funds
) VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
RETURNING id`,
		b.Title, b.Tagline, b.Description, b.Category, b.Location,
		b.FundingGoal, b.MinInvestment, b.TeamSize,
		b.Website, b.SocialMedia, b.EntrepreneurName, b.BusinessPlan,
		b.FinancialProjections, b.MarketAnalysis, b.CompetitiveAdvantage, b.UseOfFunds,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("inserting business: %w", err)
	}

	for i, img := range p.Images {
		if _, err = tx.Exec(ctx,
			`INSERT INTO business_images (business_id, image, sort_order) VALUES ($1, $2, $3)`,
			id, img.Image, i,
		); err != nil {
			return nil, fmt.Errorf("inserting image %d: %w", i, err)
		}
	}

	for i, v := range p.Videos {
		if _, err = tx.Exec(ctx,
			`INSERT INTO business_videos (business_id, title, video_file, thumbnail, duration) VALUES ($1, $2, $3, $4, $5)`,
			id, v.Title, v.VideoFile, v.Thumbnail, v.Duration,
		); err != nil {
			return nil, fmt.Errorf("inserting video %d: %w", i, err)
		}
	}

	for i, d := range p.Documents {
		if _, err = tx.Exec(ctx,
			`INSERT INTO business_documents (business_id, name, document_file, size) VALUES ($1, $2, $3, $4)`,
			id, d.Name, d.DocumentFile, d.Size,
		); err != nil {
			return nil, fmt.Errorf("inserting document %d: %w", i, err)
		}
	}

	detail, err = getDetail(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing pitch: %w", err)
	}

	return detail, nil
}

// Delete removes the business and returns the media paths it referenced.
func (r *BusinessRepository) Delete(ctx context.Context, id int64) (paths []string, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning delete transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	rows, err := tx.Query(ctx, `SELECT image FROM business_images WHERE business_id = $1
UNION ALL SELECT video_file FROM business_videos WHERE business_id = $1
UNION ALL SELECT thumbnail FROM business_videos WHERE business_id = $1
UNION ALL SELECT document_file FROM business_documents WHERE business_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("collecting media paths: %w", err)
	}
	all, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning media paths: %w", err)
	}
	for _, p := range all {
		if p != "" {
			paths = append(paths, p)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM businesses WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("deleting business %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		err = model.ErrBusinessNotFound
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing delete: %w", err)
	}

	return paths, nil
}

// Invest adds amount to the business unless it would pass the funding goal.
// The check and the increment are one statement.
func (r *BusinessRepository) Invest(ctx context.Context, id int64, amount decimal.Decimal) (*model.InvestmentResult, error) {
	var res model.InvestmentResult

	err := r.db.QueryRow(ctx, `UPDATE businesses
SET current_funding = current_funding + $2,
	backers = backers + 1,
	updated_at = now()
WHERE id = $1 AND current_funding + $2 <= funding_goal
RETURNING id, current_funding, backers, funding_goal`, id, amount,
	).Scan(&res.ID, &res.CurrentFunding, &res.Backers, &res.FundingGoal)
	if err == nil {
		return &res, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("investing in business %d: %w", id, err)
	}

	var b model.Business
	err = r.db.QueryRow(ctx,
		`SELECT funding_goal, current_funding FROM businesses WHERE id = $1`, id,
	).Scan(&b.FundingGoal, &b.CurrentFunding)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("reading business %d: %w", id, err)
	}

	return nil, &model.ExceedsGoalError{Remaining: b.Remaining()}
}
