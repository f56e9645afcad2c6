package repository

import (
	"time"

	"github.com/fieldnote/fieldnote-api/internal/models"
	"github.com/fieldnote/fieldnote-api/internal/utils"
)

// UserRepository defines the interface for user and signup data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateCompanyWithOwner creates a company and its first (staff) user
	// within a single transaction.
	CreateCompanyWithOwner(company *models.Company, owner *models.User) error

	// FindByID finds a user by ID, company preloaded
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByIDInCompany finds a user by ID scoped to a company
	FindByIDInCompany(id, companyID uint64) (*models.User, error)

	// ListByCompany lists a company's users ordered by id
	ListByCompany(companyID uint64) ([]models.User, error)

	// CountCompaniesByName counts companies with the given name
	CountCompaniesByName(name string) (int64, error)

	// CountInCompany counts how many of the given user IDs belong to the company
	CountInCompany(userIDs []uint64, companyID uint64) (int64, error)

	// Delete removes a user, nulling memo authorship and dropping mention rows
	Delete(id uint64) error
}

// InvitationRepository defines the interface for invitation data access
type InvitationRepository interface {
	// Create persists a new pending invitation
	Create(invitation *models.Invitation) error

	// FindByToken finds an invitation by its token, company preloaded
	FindByToken(token string) (*models.Invitation, error)

	// FindByIDInCompany finds an invitation by ID scoped to a company
	FindByIDInCompany(id, companyID uint64) (*models.Invitation, error)

	// ListPendingByCompany lists a company's pending invitations, newest first
	ListPendingByCompany(companyID uint64) ([]models.Invitation, error)

	// AcceptWithUser creates the user and flips the invitation to accepted
	// as one all-or-nothing unit.
	AcceptWithUser(user *models.User, invitationID uint64) error

	// Delete removes an invitation
	Delete(id uint64) error
}

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	Create(customer *models.Customer) error
	FindByIDInCompany(id, companyID uint64) (*models.Customer, error)
	ListByCompany(companyID uint64) ([]models.Customer, error)
	Update(customer *models.Customer) error

	// Delete removes a customer and nulls the customer reference on its
	// projects; the projects themselves are left intact.
	Delete(id uint64) error

	// CountByName counts customers with the given name inside a company
	CountByName(companyID uint64, name string, excludeID uint64) (int64, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(project *models.Project) error

	// FindByIDInCompany finds a project by ID scoped to a company with
	// optional preloading.
	FindByIDInCompany(id, companyID uint64, preload ...string) (*models.Project, error)

	// ListByCompany lists a page of the company's projects, newest first,
	// together with the total row count.
	ListByCompany(companyID uint64, params utils.PaginationParams) ([]models.Project, int64, error)

	Update(project *models.Project) error

	// Delete removes a project and all of its tasks (with dependency edges),
	// memos (with mentions) and checklists (with items) in one transaction.
	Delete(id uint64) error

	// CountByStatus counts a company's projects with the exact status value
	CountByStatus(companyID uint64, status string) (int64, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a task together with its dependency edges
	Create(task *models.Task, dependencies []*models.Task) error

	// FindByIDInCompany finds a task by ID scoped to a company, dependencies preloaded
	FindByIDInCompany(id, companyID uint64) (*models.Task, error)

	// ListByProject lists a project's tasks ordered by
	// (start_date, end_date, id) with dependencies preloaded.
	ListByProject(projectID uint64) ([]models.Task, error)

	// ListSiblings lists the other tasks of the same project (self excluded),
	// the exact allowed dependency candidate set.
	ListSiblings(projectID, excludeTaskID uint64) ([]models.Task, error)

	// FindInProject finds tasks by ID restricted to one project
	FindInProject(taskIDs []uint64, projectID uint64) ([]*models.Task, error)

	Update(task *models.Task) error

	// ReplaceDependencies replaces the task's outgoing dependency edges
	ReplaceDependencies(task *models.Task, dependencies []*models.Task) error

	// Delete removes a task and every edge row it appears in, on either side
	Delete(id uint64) error

	// DueSoon lists a company's unfinished tasks with end_date on or before
	// the limit, ordered by end_date ascending.
	DueSoon(companyID uint64, limit time.Time) ([]models.Task, error)
}

// MemoRepository defines the interface for memo data access
type MemoRepository interface {
	// Create creates a memo together with its mention rows
	Create(memo *models.Memo, mentions []models.User) error

	// FindByIDInCompany finds a memo by ID scoped to a company
	FindByIDInCompany(id, companyID uint64) (*models.Memo, error)

	// ListByProject lists a project's memos newest first with author and mentions
	ListByProject(projectID uint64) ([]models.Memo, error)

	Update(memo *models.Memo) error

	// ReplaceMentions replaces the memo's mention set
	ReplaceMentions(memo *models.Memo, mentions []models.User) error

	// RecentByCompany lists the company's most recent memos, newest first
	RecentByCompany(companyID uint64, limit int) ([]models.Memo, error)
}

// ChecklistRepository defines the interface for checklist data access
type ChecklistRepository interface {
	Create(checklist *models.Checklist) error
	FindByIDInCompany(id, companyID uint64) (*models.Checklist, error)
	ListByProject(projectID uint64) ([]models.Checklist, error)
	Update(checklist *models.Checklist) error

	CreateItem(item *models.ChecklistItem) error
	FindItemByIDInCompany(id, companyID uint64) (*models.ChecklistItem, error)
	UpdateItem(item *models.ChecklistItem) error
}
