package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ballotbox/contexts/governance/voting-store/domain/entities"
	domainerrors "ballotbox/contexts/governance/voting-store/domain/errors"
	"ballotbox/contexts/governance/voting-store/ports"
	"ballotbox/internal/shared/outbox"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateVoting(ctx context.Context, voting entities.Voting) (entities.Voting, error) {
	row := votingModelFromEntity(voting)
	var created entities.Voting
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrConflict
			}
			return err
		}
		optionRows := make([]votingOptionModel, 0, len(voting.Options))
		for _, option := range voting.Options {
			optionRows = append(optionRows, votingOptionModel{
				VotingID:  row.ID,
				OptionID:  option.OptionID,
				Text:      option.Text,
				VoteCount: option.VoteCount,
			})
		}
		if err := tx.Create(&optionRows).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrConflict
			}
			return err
		}
		created = row.toEntity(optionRows)
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			return entities.Voting{}, err
		}
		return entities.Voting{}, r.logError("voting_repo_create_failed", err,
			"creator_id", voting.CreatorID,
		)
	}
	return created, nil
}

func (r *Repository) GetVoting(ctx context.Context, votingID int64) (entities.Voting, error) {
	var row votingModel
	err := r.db.WithContext(ctx).
		Where("id = ?", votingID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Voting{}, domainerrors.ErrVotingNotFound
		}
		return entities.Voting{}, r.logError("voting_repo_get_failed", err, "voting_id", votingID)
	}
	options, err := r.listOptions(ctx, r.db, votingID)
	if err != nil {
		return entities.Voting{}, err
	}
	return row.toEntity(options), nil
}

func (r *Repository) ListVotings(ctx context.Context) ([]entities.Voting, error) {
	var rows []votingModel
	if err := r.db.WithContext(ctx).
		Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_failed", err)
	}
	items := make([]entities.Voting, 0, len(rows))
	for _, row := range rows {
		options, err := r.listOptions(ctx, r.db, row.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, row.toEntity(options))
	}
	return items, nil
}

// CastVote locks the voting row for the whole check-then-update step so the
// capacity check, the increments, and the close transition observe and write
// consistent state.
func (r *Repository) CastVote(ctx context.Context, votingID int64, optionID int) (entities.Voting, error) {
	var updated entities.Voting
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row votingModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", votingID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrVotingNotFound
			}
			return err
		}
		if row.Status != string(entities.VotingStatusActive) {
			return domainerrors.ErrVotingNotActive
		}

		var option votingOptionModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("voting_id = ?", votingID).
			Where("option_id = ?", optionID).
			First(&option).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrOptionNotFound
			}
			return err
		}

		now := time.Now().UTC()
		if err := tx.Model(&votingOptionModel{}).
			Where("voting_id = ?", votingID).
			Where("option_id = ?", optionID).
			Update("vote_count", gorm.Expr("vote_count + 1")).Error; err != nil {
			return err
		}

		row.ParticipantCount++
		if row.ParticipantCount >= row.Capacity {
			row.Status = string(entities.VotingStatusAwaitingReveal)
		}
		row.UpdatedAt = now
		if err := tx.Model(&votingModel{}).
			Where("id = ?", votingID).
			Updates(map[string]any{
				"participant_count": row.ParticipantCount,
				"status":            row.Status,
				"updated_at":        row.UpdatedAt,
			}).Error; err != nil {
			return err
		}

		options, err := r.listOptions(ctx, tx, votingID)
		if err != nil {
			return err
		}
		updated = row.toEntity(options)
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrVotingNotFound) ||
			errors.Is(err, domainerrors.ErrOptionNotFound) ||
			errors.Is(err, domainerrors.ErrVotingNotActive) {
			return entities.Voting{}, err
		}
		return entities.Voting{}, r.logError("voting_repo_cast_failed", err,
			"voting_id", votingID,
			"option_id", optionID,
		)
	}
	return updated, nil
}

func (r *Repository) RevealVoting(ctx context.Context, votingID int64) (entities.Voting, error) {
	var updated entities.Voting
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row votingModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", votingID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrVotingNotFound
			}
			return err
		}
		switch row.Status {
		case string(entities.VotingStatusActive):
			return domainerrors.ErrVotingStillOpen
		case string(entities.VotingStatusRevealed):
			return domainerrors.ErrAlreadyRevealed
		}

		row.Status = string(entities.VotingStatusRevealed)
		row.UpdatedAt = time.Now().UTC()
		if err := tx.Model(&votingModel{}).
			Where("id = ?", votingID).
			Updates(map[string]any{
				"status":     row.Status,
				"updated_at": row.UpdatedAt,
			}).Error; err != nil {
			return err
		}

		options, err := r.listOptions(ctx, tx, votingID)
		if err != nil {
			return err
		}
		updated = row.toEntity(options)
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrVotingNotFound) ||
			errors.Is(err, domainerrors.ErrVotingStillOpen) ||
			errors.Is(err, domainerrors.ErrAlreadyRevealed) {
			return entities.Voting{}, err
		}
		return entities.Voting{}, r.logError("voting_repo_reveal_failed", err, "voting_id", votingID)
	}
	return updated, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, message ports.OutboxMessage) error {
	row := outboxModel{
		OutboxID:  message.OutboxID,
		EventType: message.EventType,
		Payload:   message.Payload,
		Status:    outbox.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if row.OutboxID == "" {
		row.OutboxID = uuid.NewString()
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "outbox_id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return r.logError("voting_repo_append_outbox_failed", create.Error, "outbox_id", row.OutboxID)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_pending_outbox_failed", err, "limit", limit)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			Payload:   append([]byte(nil), row.Payload...),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":       outbox.StatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("voting_repo_mark_outbox_published_failed", result.Error, "outbox_id", outboxID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrConflict
	}
	return nil
}

func (r *Repository) listOptions(ctx context.Context, tx *gorm.DB, votingID int64) ([]votingOptionModel, error) {
	var rows []votingOptionModel
	if err := tx.WithContext(ctx).
		Where("voting_id = ?", votingID).
		Order("option_id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_options_failed", err, "voting_id", votingID)
	}
	return rows, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "governance/voting-store",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("voting repository operation failed", fields...)
	return err
}

type votingModel struct {
	ID               int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Title            string    `gorm:"column:title"`
	Description      string    `gorm:"column:description"`
	CreatorID        string    `gorm:"column:creator_id"`
	Capacity         int       `gorm:"column:capacity"`
	ParticipantCount int       `gorm:"column:participant_count"`
	Status           string    `gorm:"column:status"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (votingModel) TableName() string {
	return "votings"
}

func votingModelFromEntity(voting entities.Voting) votingModel {
	row := votingModel{
		ID:               voting.VotingID,
		Title:            voting.Title,
		Description:      voting.Description,
		CreatorID:        voting.CreatorID,
		Capacity:         voting.Capacity,
		ParticipantCount: voting.ParticipantCount,
		Status:           string(voting.Status),
		CreatedAt:        voting.CreatedAt.UTC(),
		UpdatedAt:        voting.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row
}

func (m votingModel) toEntity(optionRows []votingOptionModel) entities.Voting {
	options := make([]entities.VotingOption, 0, len(optionRows))
	for _, row := range optionRows {
		options = append(options, entities.VotingOption{
			OptionID:  row.OptionID,
			Text:      row.Text,
			VoteCount: row.VoteCount,
		})
	}
	return entities.Voting{
		VotingID:         m.ID,
		Title:            m.Title,
		Description:      m.Description,
		CreatorID:        m.CreatorID,
		Options:          options,
		Capacity:         m.Capacity,
		ParticipantCount: m.ParticipantCount,
		Status:           entities.VotingStatus(m.Status),
		CreatedAt:        m.CreatedAt.UTC(),
		UpdatedAt:        m.UpdatedAt.UTC(),
	}
}

type votingOptionModel struct {
	VotingID  int64  `gorm:"column:voting_id;primaryKey"`
	OptionID  int    `gorm:"column:option_id;primaryKey"`
	Text      string `gorm:"column:text"`
	VoteCount int    `gorm:"column:vote_count"`
}

func (votingOptionModel) TableName() string {
	return "voting_options"
}

type outboxModel struct {
	OutboxID    string     `gorm:"column:outbox_id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "voting_outbox"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.VotingRepository = (*Repository)(nil)
var _ ports.OutboxWriter = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
