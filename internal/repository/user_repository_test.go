package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fieldnote/fieldnote-api/internal/models"
)

func openMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestGormUserRepository_FindByUsername_ExcludesSoftDeleted(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "is_staff"}).
		AddRow(1, "founder", "founder@acme.example", "hashed", true)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\? AND `users`.`deleted_at` IS NULL").
		WithArgs("founder", 1).
		WillReturnRows(rows)

	user, err := repo.FindByUsername("founder")
	require.NoError(t, err)
	require.Equal(t, "founder", user.Username)
	require.True(t, user.IsStaff)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_CreateCompanyWithOwner_RollsBackOnUserFailure(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `companies`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnError(gorm.ErrInvalidData)
	mock.ExpectRollback()

	company := &models.Company{Name: "Acme Construction"}
	owner := &models.User{Username: "founder", Email: "founder@acme.example", PasswordHash: "hashed"}

	err := repo.CreateCompanyWithOwner(company, owner)
	require.ErrorIs(t, err, ErrCreateUser)
	require.NotNil(t, owner.CompanyID)
	require.EqualValues(t, 7, *owner.CompanyID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_Delete_DetachesMemosAndMentions(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `memos` SET `author_id`=\\?").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM memo_mentions WHERE user_id = \\?").
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `users` SET `deleted_at`=").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(3))
	require.NoError(t, mock.ExpectationsWereMet())
}
