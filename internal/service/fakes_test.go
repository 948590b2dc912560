package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/brubakerjm/etams/internal/domain"
	"github.com/brubakerjm/etams/internal/events"
)

// fakeEmployeeRepo is an in-memory stand-in for the postgres repository.
// Misses return pgx.ErrNoRows, matching what the services check for.
type fakeEmployeeRepo struct {
	mu          sync.Mutex
	nextID      int
	employees   map[int]*domain.Employee
	lookupCalls int
}

func newFakeEmployeeRepo(seed ...*domain.Employee) *fakeEmployeeRepo {
	repo := &fakeEmployeeRepo{employees: map[int]*domain.Employee{}, nextID: 1}
	for _, employee := range seed {
		if employee.ID == 0 {
			employee.ID = repo.nextID
		}
		if employee.ID >= repo.nextID {
			repo.nextID = employee.ID + 1
		}
		copied := *employee
		repo.employees[employee.ID] = &copied
	}
	return repo
}

func (r *fakeEmployeeRepo) Create(_ context.Context, employee *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	employee.ID = r.nextID
	r.nextID++
	copied := *employee
	r.employees[employee.ID] = &copied
	return nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, employee *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.employees[employee.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *employee
	r.employees[employee.ID] = &copied
	return nil
}

func (r *fakeEmployeeRepo) UpdatePasswordHash(_ context.Context, id int, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	employee, ok := r.employees[id]
	if !ok {
		return pgx.ErrNoRows
	}
	employee.PasswordHash = passwordHash
	return nil
}

func (r *fakeEmployeeRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.employees[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.employees, id)
	return nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id int) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if employee, ok := r.employees[id]; ok {
		copied := *employee
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeEmployeeRepo) GetByUsername(_ context.Context, username string) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookupCalls++
	for _, employee := range r.employees {
		if employee.Username == username {
			copied := *employee
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, employee := range r.employees {
		if strings.EqualFold(employee.Email, email) {
			copied := *employee
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeEmployeeRepo) List(_ context.Context) ([]domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Employee, 0, len(r.employees))
	for _, employee := range r.employees {
		out = append(out, *employee)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeEmployeeRepo) Exists(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.employees[id]
	return ok, nil
}

// fakeTaskRepo mirrors the postgres task repository in memory.
type fakeTaskRepo struct {
	mu     sync.Mutex
	nextID int
	tasks  map[int]*domain.Task
}

func newFakeTaskRepo(seed ...*domain.Task) *fakeTaskRepo {
	repo := &fakeTaskRepo{tasks: map[int]*domain.Task{}, nextID: 1}
	for _, task := range seed {
		if task.ID == 0 {
			task.ID = repo.nextID
		}
		if task.ID >= repo.nextID {
			repo.nextID = task.ID + 1
		}
		copied := *task
		repo.tasks[task.ID] = &copied
	}
	return repo
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task.ID = r.nextID
	r.nextID++
	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id int) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if task, ok := r.tasks[id]; ok {
		copied := *task
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTaskRepo) List(_ context.Context) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		out = append(out, *task)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTaskRepo) ListByEmployee(_ context.Context, employeeID int) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Task{}
	for _, task := range r.tasks {
		if task.AssignedEmployeeID != nil && *task.AssignedEmployeeID == employeeID {
			out = append(out, *task)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTaskRepo) Exists(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tasks[id]
	return ok, nil
}

func (r *fakeTaskRepo) CountByAssignee(_ context.Context) (map[int]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[int]int{}
	for _, task := range r.tasks {
		if task.AssignedEmployeeID != nil {
			counts[*task.AssignedEmployeeID]++
		}
	}
	return counts, nil
}

// captureDispatcher records published events for assertions.
type captureDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *captureDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *captureDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *captureDispatcher) byType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := []events.Event{}
	for _, event := range d.events {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}
