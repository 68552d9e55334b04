package domain

import "testing"

func TestUserValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	validUser := User{
		ID:   1,
		Name: "Pobi",
	}

	// Test valid user
	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Test negative ID
	invalidUser := validUser
	invalidUser.ID = -1
	if err := invalidUser.Validate(); err != ErrInvalidID {
		t.Errorf("Expected error %v, got %v", ErrInvalidID, err)
	}

	// Test empty name
	invalidUser = validUser
	invalidUser.Name = ""
	if err := invalidUser.Validate(); err != ErrEmptyUserName {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserName, err)
	}
}
