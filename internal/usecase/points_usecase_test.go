package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/domain"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/usecase"
)

func TestAwardPoints_Validation(t *testing.T) {
	f := newFixture()
	f.seedMember("club-1", "alice", "0", 0)

	for _, points := range []int64{0, -10} {
		_, err := f.points.AwardPoints(context.Background(), usecase.AwardPointsInput{
			TenantID: "club-1",
			ActorID:  "alice",
			Points:   points,
		})
		if !errors.Is(err, domain.ErrInvalidPoints) {
			t.Errorf("AwardPoints(%d) error = %v, want ErrInvalidPoints", points, err)
		}
	}
}

func TestRedeemPoints_HardFailureOnShortfall(t *testing.T) {
	f := newFixture()
	f.seedMember("club-1", "alice", "0", 30)

	_, err := f.points.RedeemPoints(context.Background(), usecase.AwardPointsInput{
		TenantID: "club-1",
		ActorID:  "alice",
		Points:   31,
		Reason:   "Merch redemption",
	})
	if !errors.Is(err, domain.ErrInsufficientPoints) {
		t.Fatalf("error = %v, want ErrInsufficientPoints", err)
	}

	m, _ := f.members.Get(context.Background(), "club-1", "alice")
	if m.Points != 30 {
		t.Errorf("points = %d, want unchanged 30", m.Points)
	}
}

func TestAwardRegistrationBonus_ReplayReturnsOriginal(t *testing.T) {
	f := newFixture()
	f.seedMember("club-1", "alice", "0", 0)

	first, err := f.points.AwardRegistrationBonus(context.Background(), "club-1", "alice", "t-1")
	if err != nil {
		t.Fatalf("first award error = %v", err)
	}

	second, err := f.points.AwardRegistrationBonus(context.Background(), "club-1", "alice", "t-1")
	if err != nil {
		t.Fatalf("replayed award error = %v", err)
	}

	if second.Transaction.Reference != first.Transaction.Reference {
		t.Errorf("replay reference = %s, want %s", second.Transaction.Reference, first.Transaction.Reference)
	}
	if second.NewPoints != usecase.RegistrationBonusPoints {
		t.Errorf("replay NewPoints = %d, want %d", second.NewPoints, usecase.RegistrationBonusPoints)
	}

	count := 0
	for _, tx := range f.txRepo.All() {
		if tx.Reference == first.Transaction.Reference {
			count++
		}
	}
	if count != 1 {
		t.Errorf("ledger holds %d entries for the bonus reference, want 1", count)
	}
}

func TestAwardRankingBonus(t *testing.T) {
	tests := []struct {
		rank   int
		points int64
	}{
		{1, 500},
		{2, 300},
		{3, 200},
		{4, 100},
		{5, 100},
	}

	for _, tt := range tests {
		f := newFixture()
		f.seedMember("club-1", "alice", "0", 0)

		result, err := f.points.AwardRankingBonus(context.Background(), "club-1", "alice", "t-1", tt.rank)
		if err != nil {
			t.Fatalf("AwardRankingBonus(rank=%d) error = %v", tt.rank, err)
		}
		if result.NewPoints != tt.points {
			t.Errorf("rank %d: NewPoints = %d, want %d", tt.rank, result.NewPoints, tt.points)
		}
	}
}

func TestAwardRankingBonus_OutsideTable(t *testing.T) {
	f := newFixture()
	f.seedMember("club-1", "alice", "0", 0)

	result, err := f.points.AwardRankingBonus(context.Background(), "club-1", "alice", "t-1", 6)
	if err != nil {
		t.Fatalf("AwardRankingBonus(rank=6) error = %v", err)
	}
	if result != nil {
		t.Errorf("result = %+v, want nil for rank outside the bonus table", result)
	}
}

func TestAwardDailyLogin_OncePerDay(t *testing.T) {
	f := newFixture()
	f.seedMember("club-1", "alice", "0", 0)

	day := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)

	first, err := f.points.AwardDailyLogin(context.Background(), "club-1", "alice", day)
	if err != nil {
		t.Fatalf("first AwardDailyLogin() error = %v", err)
	}
	if first.NewPoints != usecase.DailyLoginPoints {
		t.Errorf("NewPoints = %d, want %d", first.NewPoints, usecase.DailyLoginPoints)
	}

	// Same calendar day, later hour: replayed, not double credited.
	second, err := f.points.AwardDailyLogin(context.Background(), "club-1", "alice", day.Add(3*time.Hour))
	if err != nil {
		t.Fatalf("second AwardDailyLogin() error = %v", err)
	}
	if second.NewPoints != usecase.DailyLoginPoints {
		t.Errorf("same-day NewPoints = %d, want %d", second.NewPoints, usecase.DailyLoginPoints)
	}

	// Next day credits again.
	third, err := f.points.AwardDailyLogin(context.Background(), "club-1", "alice", day.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("next-day AwardDailyLogin() error = %v", err)
	}
	if third.NewPoints != 2*usecase.DailyLoginPoints {
		t.Errorf("next-day NewPoints = %d, want %d", third.NewPoints, 2*usecase.DailyLoginPoints)
	}
}

func TestAwardSpendRebate(t *testing.T) {
	tests := []struct {
		name   string
		charge string
		points int64
	}{
		{"floors fractional points", "110", 5},
		{"whole points", "200", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.seedMember("club-1", "alice", "0", 0)

			result, err := f.points.AwardSpendRebate(context.Background(), "club-1", "alice", "TXN-1", mustDecimal(t, tt.charge))
			if err != nil {
				t.Fatalf("AwardSpendRebate() error = %v", err)
			}
			if result.NewPoints != tt.points {
				t.Errorf("NewPoints = %d, want %d", result.NewPoints, tt.points)
			}
		})
	}
}

func TestAwardSpendRebate_TinyChargeAwardsNothing(t *testing.T) {
	f := newFixture()
	f.seedMember("club-1", "alice", "0", 0)

	result, err := f.points.AwardSpendRebate(context.Background(), "club-1", "alice", "TXN-1", mustDecimal(t, "10"))
	if err != nil {
		t.Fatalf("AwardSpendRebate() error = %v", err)
	}
	if result != nil {
		t.Errorf("result = %+v, want nil when the rebate rounds to zero", result)
	}
}

func TestAwardReferral_OncePerReferee(t *testing.T) {
	f := newFixture()
	f.seedMember("club-1", "alice", "0", 0)

	if _, err := f.points.AwardReferral(context.Background(), "club-1", "alice", "bob"); err != nil {
		t.Fatalf("first AwardReferral() error = %v", err)
	}

	second, err := f.points.AwardReferral(context.Background(), "club-1", "alice", "bob")
	if err != nil {
		t.Fatalf("replayed AwardReferral() error = %v", err)
	}
	if second.NewPoints != usecase.ReferralPoints {
		t.Errorf("NewPoints = %d, want %d after replay", second.NewPoints, usecase.ReferralPoints)
	}
}
