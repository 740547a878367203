package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"miniapp-market-backend/internal/features/referral/models"
	"miniapp-market-backend/internal/features/referral/repository"
)

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) repository.ReferralRepository {
	return &postgresRepository{db: db}
}

// CountReferrals считает профили, приглашенные данным
func (r *postgresRepository) CountReferrals(ctx context.Context, profileID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM profiles WHERE referred_by = $1`, profileID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count referrals: %w", err)
	}

	return count, nil
}

// LatestEarnings возвращает последние начисления с именем приглашенного.
// Имя: first_name, иначе username, иначе подстановка.
func (r *postgresRepository) LatestEarnings(ctx context.Context, profileID string, limit int) ([]models.Earning, error) {
	query := `
		SELECT e.id, e.purchase_amount, e.earning_amount, e.purchase_type, e.created_at,
			COALESCE(NULLIF(p.first_name, ''), NULLIF(p.username, ''), $3)
		FROM referral_earnings e
		LEFT JOIN profiles p ON p.id = e.referred_id
		WHERE e.referrer_id = $1
		ORDER BY e.created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, profileID, limit, models.FallbackReferredName)
	if err != nil {
		return nil, fmt.Errorf("failed to get earnings: %w", err)
	}
	defer rows.Close()

	earnings := []models.Earning{}
	for rows.Next() {
		var e models.Earning
		err := rows.Scan(&e.ID, &e.PurchaseAmount, &e.EarningAmount,
			&e.PurchaseType, &e.CreatedAt, &e.ReferredName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan earning: %w", err)
		}
		earnings = append(earnings, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read earnings: %w", err)
	}

	return earnings, nil
}
