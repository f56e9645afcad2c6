package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fieldnote/fieldnote-api/internal/constants"
	"github.com/fieldnote/fieldnote-api/internal/models"
	"github.com/fieldnote/fieldnote-api/internal/repository"
)

func newTestDashboardService(db *gorm.DB) *DashboardService {
	return NewDashboardService(
		repository.NewProjectRepository(db),
		repository.NewTaskRepository(db),
		repository.NewMemoRepository(db),
	)
}

func TestDashboardService_Compute(t *testing.T) {
	db := openServiceTestDB(t)
	user := seedCompanyUser(t, db, "acme", "owner")
	svc := newTestDashboardService(db)

	active := seedProject(t, db, user, "Active")
	require.NoError(t, db.Model(active).Update("status", constants.ProjectStatusInProgress).Error)
	alsoActive := seedProject(t, db, user, "Also active")
	require.NoError(t, db.Model(alsoActive).Update("status", constants.ProjectStatusInProgress).Error)
	done := seedProject(t, db, user, "Done")
	require.NoError(t, db.Model(done).Update("status", "completed").Error)

	today := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	mkDate := func(value string) *time.Time {
		d, err := time.Parse("2006-01-02", value)
		require.NoError(t, err)
		return &d
	}

	// Past due and unfinished: counts
	require.NoError(t, db.Create(&models.Task{ProjectID: active.ID, Name: "Late", EndDate: mkDate("2024-01-05"), Progress: 50}).Error)
	// Due inside the week: counts
	require.NoError(t, db.Create(&models.Task{ProjectID: active.ID, Name: "Soon", EndDate: mkDate("2024-01-15"), Progress: 0}).Error)
	// Due beyond the window: excluded
	require.NoError(t, db.Create(&models.Task{ProjectID: active.ID, Name: "Later", EndDate: mkDate("2024-02-01"), Progress: 0}).Error)
	// Due soon but finished: excluded
	require.NoError(t, db.Create(&models.Task{ProjectID: active.ID, Name: "Finished", EndDate: mkDate("2024-01-12"), Progress: 100}).Error)
	// No end date: excluded
	require.NoError(t, db.Create(&models.Task{ProjectID: active.ID, Name: "Open ended", Progress: 0}).Error)

	for i := 0; i < 7; i++ {
		memo := &models.Memo{ProjectID: active.ID, Content: "Memo", AuthorID: &user.ID}
		require.NoError(t, db.Create(memo).Error)
	}

	summary, err := svc.Compute(user.CompanyScopeID(), today)
	require.NoError(t, err)

	require.EqualValues(t, 2, summary.InProgressProjectCount)

	require.Equal(t, 2, summary.OverdueTaskCount)
	require.Len(t, summary.OverdueTasks, 2)
	// Ordered by end date, most urgent first
	require.Equal(t, "Late", summary.OverdueTasks[0].Name)
	require.Equal(t, "Soon", summary.OverdueTasks[1].Name)
	require.Equal(t, active.Name, summary.OverdueTasks[0].Project.Name)

	require.Len(t, summary.RecentMemos, constants.RecentMemoLimit)
}

func TestDashboardService_Compute_ScopedToCompany(t *testing.T) {
	db := openServiceTestDB(t)
	owner := seedCompanyUser(t, db, "acme", "owner")
	outsider := seedCompanyUser(t, db, "rival", "outsider")
	svc := newTestDashboardService(db)

	theirs := seedProject(t, db, outsider, "Theirs")
	require.NoError(t, db.Model(theirs).Update("status", constants.ProjectStatusInProgress).Error)

	end := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.Task{ProjectID: theirs.ID, Name: "Their task", EndDate: &end}).Error)
	require.NoError(t, db.Create(&models.Memo{ProjectID: theirs.ID, Content: "Their memo", AuthorID: &outsider.ID}).Error)

	summary, err := svc.Compute(owner.CompanyScopeID(), time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Zero(t, summary.InProgressProjectCount)
	require.Empty(t, summary.OverdueTasks)
	require.Empty(t, summary.RecentMemos)
}
