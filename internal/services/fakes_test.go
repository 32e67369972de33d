// file: internal/services/fakes_test.go
package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"fresherjobs/internal/models"
	"fresherjobs/internal/repositories"

	"github.com/lib/pq"
)

// errDuplicate mimics the Postgres unique violation the repositories
// translate into conflicts.
var errDuplicate = &pq.Error{Code: "23505"}

// errNoRows mirrors what the repositories return when an update or
// delete touches nothing.
var errNoRows = sql.ErrNoRows

// ===============================
// USER REPOSITORY FAKE
// ===============================

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User

	// companies receives the paired row from CreateWithCompany when set.
	companies *fakeCompanyRepo

	deleted []int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[int64]*models.User{}}
}

func (f *fakeUserRepo) add(user *models.User) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == 0 {
		user.ID = f.nextID
		f.nextID++
	} else if user.ID >= f.nextID {
		f.nextID = user.ID + 1
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return errDuplicate
		}
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) CreateWithCompany(ctx context.Context, user *models.User, company *models.Company) error {
	if err := f.Create(ctx, user); err != nil {
		return err
	}
	company.UserID = user.ID
	if f.companies != nil {
		return f.companies.Create(ctx, company)
	}
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) ListByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) ListPendingRecruiters(ctx context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.User
	for _, u := range f.users {
		if u.Role == models.RoleRecruiter && !u.IsApproved {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) SetApproved(ctx context.Context, id int64, approved bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return errNoRows
	}
	u.IsApproved = approved
	return nil
}

func (f *fakeUserRepo) SetResetToken(ctx context.Context, id int64, token string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return errNoRows
	}
	u.ResetToken = &token
	u.ResetTokenExpiresAt = &expiresAt
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return errNoRows
	}
	u.PasswordHash = passwordHash
	u.ResetToken = nil
	u.ResetTokenExpiresAt = nil
	return nil
}

func (f *fakeUserRepo) DeleteWithDependents(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return errNoRows
	}
	delete(f.users, id)
	f.deleted = append(f.deleted, id)
	return nil
}

// ===============================
// COMPANY REPOSITORY FAKE
// ===============================

type fakeCompanyRepo struct {
	mu        sync.Mutex
	nextID    int64
	companies map[int64]*models.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{nextID: 1, companies: map[int64]*models.Company{}}
}

func (f *fakeCompanyRepo) add(company *models.Company) *models.Company {
	f.mu.Lock()
	defer f.mu.Unlock()
	if company.ID == 0 {
		company.ID = f.nextID
		f.nextID++
	} else if company.ID >= f.nextID {
		f.nextID = company.ID + 1
	}
	f.companies[company.ID] = company
	return company
}

func (f *fakeCompanyRepo) Create(ctx context.Context, company *models.Company) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.companies {
		if c.UserID == company.UserID {
			return errDuplicate
		}
	}
	company.ID = f.nextID
	f.nextID++
	f.companies[company.ID] = company
	return nil
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.companies[id], nil
}

func (f *fakeCompanyRepo) GetByUserID(ctx context.Context, userID int64) (*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.companies {
		if c.UserID == userID {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCompanyRepo) Update(ctx context.Context, company *models.Company) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.companies[company.ID]; !ok {
		return errNoRows
	}
	f.companies[company.ID] = company
	return nil
}

// ===============================
// PROFILE REPOSITORY FAKE
// ===============================

type fakeProfileRepo struct {
	mu       sync.Mutex
	nextID   int64
	profiles map[int64]*models.FresherProfile // keyed by user ID
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{nextID: 1, profiles: map[int64]*models.FresherProfile{}}
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID int64) (*models.FresherProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profiles[userID], nil
}

func (f *fakeProfileRepo) Upsert(ctx context.Context, profile *models.FresherProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
	} else {
		profile.ID = f.nextID
		f.nextID++
	}
	profile.UpdatedAt = time.Now()
	f.profiles[profile.UserID] = profile
	return nil
}

// ===============================
// CATEGORY REPOSITORY FAKE
// ===============================

type fakeCategoryRepo struct {
	mu         sync.Mutex
	nextID     int64
	categories map[int64]*models.JobCategory
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{nextID: 1, categories: map[int64]*models.JobCategory{}}
}

func (f *fakeCategoryRepo) add(category *models.JobCategory) *models.JobCategory {
	f.mu.Lock()
	defer f.mu.Unlock()
	if category.ID == 0 {
		category.ID = f.nextID
		f.nextID++
	}
	f.categories[category.ID] = category
	return category
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *models.JobCategory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.categories {
		if c.Name == category.Name {
			return errDuplicate
		}
	}
	category.ID = f.nextID
	f.nextID++
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id int64) (*models.JobCategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.categories[id], nil
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]*models.JobCategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.JobCategory, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.categories[id]; !ok {
		return errNoRows
	}
	delete(f.categories, id)
	return nil
}

// ===============================
// JOB REPOSITORY FAKE
// ===============================

type fakeJobRepo struct {
	mu     sync.Mutex
	nextID int64
	jobs   map[int64]*models.Job

	deletedWithApps []int64
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{nextID: 1, jobs: map[int64]*models.Job{}}
}

func (f *fakeJobRepo) add(job *models.Job) *models.Job {
	f.mu.Lock()
	defer f.mu.Unlock()
	if job.ID == 0 {
		job.ID = f.nextID
		f.nextID++
	} else if job.ID >= f.nextID {
		f.nextID = job.ID + 1
	}
	f.jobs[job.ID] = job
	return job
}

func (f *fakeJobRepo) Create(ctx context.Context, job *models.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	job.ID = f.nextID
	f.nextID++
	job.PostedAt = time.Now()
	f.jobs[job.ID] = job
	return nil
}

func (f *fakeJobRepo) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jobs[id], nil
}

func (f *fakeJobRepo) Update(ctx context.Context, job *models.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.jobs[job.ID]; !ok {
		return errNoRows
	}
	f.jobs[job.ID] = job
	return nil
}

func (f *fakeJobRepo) ListActive(ctx context.Context, filter repositories.JobFilter) ([]*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Job
	for _, j := range f.jobs {
		if j.IsActive {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) ListByCompany(ctx context.Context, companyID int64) ([]*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Job
	for _, j := range f.jobs {
		if j.CompanyID == companyID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) ListAll(ctx context.Context) ([]*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Job, 0, len(f.jobs))
	for _, j := range f.jobs {
		out = append(out, j)
	}
	return out, nil
}

func (f *fakeJobRepo) DeactivateExpired(ctx context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, j := range f.jobs {
		if j.IsActive && j.ExpiresAt != nil && j.ExpiresAt.Before(before) {
			j.IsActive = false
			count++
		}
	}
	return count, nil
}

func (f *fakeJobRepo) DeleteWithApplications(ctx context.Context, jobID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.jobs[jobID]; !ok {
		return errNoRows
	}
	delete(f.jobs, jobID)
	f.deletedWithApps = append(f.deletedWithApps, jobID)
	return nil
}

// ===============================
// APPLICATION REPOSITORY FAKE
// ===============================

type fakeApplicationRepo struct {
	mu     sync.Mutex
	nextID int64
	apps   map[int64]*models.Application

	// profiles backs the read-time profile merge the SQL queries do
	// with their fresher_profiles join.
	profiles *fakeProfileRepo

	notifications []*models.Notification

	// forceDuplicate simulates losing the insert race to the unique
	// index even when the pre-check saw nothing.
	forceDuplicate bool
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{nextID: 1, apps: map[int64]*models.Application{}}
}

// view copies the stored row and merges the applicant's profile in,
// substituting the profile resume when the row stored none. The row
// itself is never touched.
func (f *fakeApplicationRepo) view(a *models.Application) *models.Application {
	out := *a
	if f.profiles == nil {
		return &out
	}
	p, _ := f.profiles.GetByUserID(context.Background(), a.UserID)
	if p == nil {
		return &out
	}
	if out.ResumeURL == nil {
		out.ResumeURL = p.ResumeURL
	}
	out.ApplicantPhoto = p.ProfilePhoto
	out.CollegeName = p.CollegeName
	out.Degree = p.Degree
	out.GraduationYear = p.GraduationYear
	out.CGPA = p.CGPA
	out.Skills = p.Skills
	out.About = p.About
	return &out
}

func (f *fakeApplicationRepo) add(app *models.Application) *models.Application {
	f.mu.Lock()
	defer f.mu.Unlock()
	if app.ID == 0 {
		app.ID = f.nextID
		f.nextID++
	} else if app.ID >= f.nextID {
		f.nextID = app.ID + 1
	}
	f.apps[app.ID] = app
	return app
}

func (f *fakeApplicationRepo) CreateWithNotification(ctx context.Context, app *models.Application, notif *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forceDuplicate {
		return errDuplicate
	}
	for _, a := range f.apps {
		if a.UserID == app.UserID && a.JobID == app.JobID {
			return errDuplicate
		}
	}
	app.ID = f.nextID
	f.nextID++
	app.AppliedAt = time.Now()
	f.apps[app.ID] = app
	f.notifications = append(f.notifications, notif)
	return nil
}

func (f *fakeApplicationRepo) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[id]
	if !ok {
		return nil, nil
	}
	return f.view(a), nil
}

func (f *fakeApplicationRepo) HasApplied(ctx context.Context, userID, jobID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.apps {
		if a.UserID == userID && a.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplicationRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Application
	for _, a := range f.apps {
		if a.UserID == userID {
			out = append(out, f.view(a))
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) ListByJob(ctx context.Context, jobID int64) ([]*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Application
	for _, a := range f.apps {
		if a.JobID == jobID {
			out = append(out, f.view(a))
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) UpdateStatusWithNotification(ctx context.Context, id int64, status models.AppStatus, notif *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[id]
	if !ok {
		return errNoRows
	}
	a.Status = status
	f.notifications = append(f.notifications, notif)
	return nil
}

// ===============================
// NOTIFICATION REPOSITORY FAKE
// ===============================

type fakeNotificationRepo struct {
	mu     sync.Mutex
	nextID int64
	notifs map[int64]*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1, notifs: map[int64]*models.Notification{}}
}

func (f *fakeNotificationRepo) Create(ctx context.Context, notif *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	notif.ID = f.nextID
	f.nextID++
	notif.CreatedAt = time.Now()
	f.notifs[notif.ID] = notif
	return nil
}

func (f *fakeNotificationRepo) ListByUser(ctx context.Context, userID int64, unreadOnly bool) ([]*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Notification
	for _, n := range f.notifs {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, n := range f.notifs {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notifs[id]
	if !ok || n.UserID != userID {
		return errNoRows
	}
	n.IsRead = true
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifs {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

// ===============================
// EMAIL FAKE
// ===============================

// recordingEmail captures sends synchronously for assertions.
type recordingEmail struct {
	mu        sync.Mutex
	welcome   []*models.User
	approved  []*models.User
	received  []*models.Application
	submitted []*models.Application
	status    []*models.Application
	resets    []string
}

func (r *recordingEmail) SendWelcomeEmail(user *models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.welcome = append(r.welcome, user)
}

func (r *recordingEmail) SendRecruiterApprovedEmail(user *models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.approved = append(r.approved, user)
}

func (r *recordingEmail) SendApplicationReceivedEmail(app *models.Application) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.received = append(r.received, app)
}

func (r *recordingEmail) SendApplicationSubmittedEmail(app *models.Application) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submitted = append(r.submitted, app)
}

func (r *recordingEmail) SendStatusUpdateEmail(app *models.Application) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = append(r.status, app)
}

func (r *recordingEmail) SendPasswordResetEmail(user *models.User, token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resets = append(r.resets, token)
}

// ===============================
// CACHE FAKE
// ===============================

type fakeCache struct {
	mu    sync.Mutex
	items map[string][]byte

	deletedPatterns []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: map[string][]byte{}}
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.items[key]
	return v, ok
}

func (f *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, key)
	return nil
}

func (f *fakeCache) DeletePattern(ctx context.Context, pattern string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedPatterns = append(f.deletedPatterns, pattern)
	f.items = map[string][]byte{}
	return nil
}

func (f *fakeCache) Health(ctx context.Context) error { return nil }
func (f *fakeCache) Close() error                     { return nil }
