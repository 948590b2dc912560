package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/brubakerjm/etams/internal/auth"
	"github.com/brubakerjm/etams/internal/domain"
)

func validEmployeeInput() EmployeeInput {
	return EmployeeInput{
		FirstName: "Alice",
		LastName:  "Anderson",
		Email:     "alice@example.com",
		Username:  "alice",
		RoleLabel: "Engineer",
		Password:  "Secret1!",
	}
}

func TestEmployeeCreateHashesPassword(t *testing.T) {
	employees := newFakeEmployeeRepo()
	svc := NewEmployeeService(employees, newFakeTaskRepo(), bcrypt.MinCost)

	created, err := svc.Create(context.Background(), validEmployeeInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == 0 {
		t.Error("expected an assigned id")
	}
	if created.PasswordHash == "Secret1!" {
		t.Fatal("password stored in plaintext")
	}
	if err := auth.ComparePassword(created.PasswordHash, "Secret1!"); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestEmployeeCreateValidation(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo(), newFakeTaskRepo(), bcrypt.MinCost)

	tests := []struct {
		name   string
		mutate func(*EmployeeInput)
	}{
		{"blank first name", func(in *EmployeeInput) { in.FirstName = "  " }},
		{"blank last name", func(in *EmployeeInput) { in.LastName = "" }},
		{"blank username", func(in *EmployeeInput) { in.Username = "" }},
		{"blank email", func(in *EmployeeInput) { in.Email = "" }},
		{"invalid email", func(in *EmployeeInput) { in.Email = "not-an-email" }},
		{"missing password", func(in *EmployeeInput) { in.Password = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validEmployeeInput()
			tt.mutate(&input)
			_, err := svc.Create(context.Background(), input)
			if got := domainStatus(t, err); got != 400 {
				t.Errorf("status = %d, want 400", got)
			}
		})
	}
}

func TestEmployeeCreateUniqueness(t *testing.T) {
	employees := newFakeEmployeeRepo(seedEmployee(t, "alice", "Secret1!", false))
	svc := NewEmployeeService(employees, newFakeTaskRepo(), bcrypt.MinCost)

	dupUsername := validEmployeeInput()
	dupUsername.Email = "other@example.com"
	if _, err := svc.Create(context.Background(), dupUsername); domainStatus(t, err) != 409 {
		t.Errorf("duplicate username error = %v, want 409", err)
	}

	dupEmail := validEmployeeInput()
	dupEmail.Username = "alice2"
	if _, err := svc.Create(context.Background(), dupEmail); domainStatus(t, err) != 409 {
		t.Errorf("duplicate email error = %v, want 409", err)
	}
}

func TestEmployeeListIncludesTaskCounts(t *testing.T) {
	alice := seedEmployee(t, "alice", "Secret1!", false)
	bob := seedEmployee(t, "bob", "Secret1!", false)
	bob.Email = "bob@example.com"
	employees := newFakeEmployeeRepo(alice, bob)

	tasks := newFakeTaskRepo(
		&domain.Task{Title: "one", Status: domain.TaskStatusPending, AssignedEmployeeID: &alice.ID},
		&domain.Task{Title: "two", Status: domain.TaskStatusInProgress, AssignedEmployeeID: &alice.ID},
		&domain.Task{Title: "three", Status: domain.TaskStatusUnassigned},
	)

	svc := NewEmployeeService(employees, tasks, bcrypt.MinCost)
	listed, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("len = %d, want 2", len(listed))
	}

	counts := map[string]int{}
	for _, entry := range listed {
		counts[entry.Employee.Username] = entry.TaskCount
	}
	if counts["alice"] != 2 {
		t.Errorf("alice task count = %d, want 2", counts["alice"])
	}
	if counts["bob"] != 0 {
		t.Errorf("bob task count = %d, want 0", counts["bob"])
	}
}

func TestEmployeeUpdateKeepsHashWithoutPassword(t *testing.T) {
	seeded := seedEmployee(t, "alice", "Secret1!", false)
	employees := newFakeEmployeeRepo(seeded)
	svc := NewEmployeeService(employees, newFakeTaskRepo(), bcrypt.MinCost)

	input := validEmployeeInput()
	input.FirstName = "Alicia"
	input.Password = ""

	updated, err := svc.Update(context.Background(), seeded.ID, input)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.FirstName != "Alicia" {
		t.Errorf("FirstName = %q, want Alicia", updated.FirstName)
	}
	if updated.PasswordHash != seeded.PasswordHash {
		t.Error("password hash changed although no password was supplied")
	}
}

func TestEmployeeUpdateRehashesNewPassword(t *testing.T) {
	seeded := seedEmployee(t, "alice", "Secret1!", false)
	employees := newFakeEmployeeRepo(seeded)
	svc := NewEmployeeService(employees, newFakeTaskRepo(), bcrypt.MinCost)

	input := validEmployeeInput()
	input.Password = "NewSecret2!"

	updated, err := svc.Update(context.Background(), seeded.ID, input)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := auth.ComparePassword(updated.PasswordHash, "NewSecret2!"); err != nil {
		t.Errorf("new password does not verify: %v", err)
	}
	if err := auth.ComparePassword(updated.PasswordHash, "Secret1!"); err == nil {
		t.Error("old password still verifies after update")
	}
}

func TestEmployeeUpdateUnknownID(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo(), newFakeTaskRepo(), bcrypt.MinCost)
	_, err := svc.Update(context.Background(), 42, validEmployeeInput())
	if got := domainStatus(t, err); got != 404 {
		t.Fatalf("status = %d, want 404", got)
	}
}

func TestEmployeeUpdatePassword(t *testing.T) {
	seeded := seedEmployee(t, "alice", "Secret1!", false)
	employees := newFakeEmployeeRepo(seeded)
	svc := NewEmployeeService(employees, newFakeTaskRepo(), bcrypt.MinCost)

	if err := svc.UpdatePassword(context.Background(), seeded.ID, "Rotated3!"); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}
	stored, err := employees.GetByID(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if err := auth.ComparePassword(stored.PasswordHash, "Rotated3!"); err != nil {
		t.Errorf("rotated password does not verify: %v", err)
	}

	if err := svc.UpdatePassword(context.Background(), seeded.ID, "   "); domainStatus(t, err) != 400 {
		t.Errorf("blank password error = %v, want 400", err)
	}
	if err := svc.UpdatePassword(context.Background(), 999, "Rotated3!"); domainStatus(t, err) != 404 {
		t.Errorf("unknown id error = %v, want 404", err)
	}
}

func TestEmployeeDelete(t *testing.T) {
	seeded := seedEmployee(t, "alice", "Secret1!", false)
	employees := newFakeEmployeeRepo(seeded)
	svc := NewEmployeeService(employees, newFakeTaskRepo(), bcrypt.MinCost)

	if err := svc.Delete(context.Background(), seeded.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), seeded.ID); domainStatus(t, err) != 404 {
		t.Errorf("second delete error = %v, want 404", err)
	}
}
