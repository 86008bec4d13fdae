package auth

import (
	"errors"
	"testing"
)

func TestMockStore_RoundTrip(t *testing.T) {
	s := NewMockStore()

	if _, err := s.GetToken(APIAccount); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
	if err := s.SetToken(" API ", "tok"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	got, err := s.GetToken(APIAccount)
	if err != nil || got != "tok" {
		t.Fatalf("GetToken = %q, %v", got, err)
	}
	if err := s.DeleteToken(APIAccount); err != nil {
		t.Fatalf("DeleteToken: %v", err)
	}
	if err := s.DeleteToken(APIAccount); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("second delete: expected ErrTokenNotFound, got %v", err)
	}
}

func TestMockStore_Err(t *testing.T) {
	boom := errors.New("keychain locked")
	s := NewMockStore()
	s.SetToken(APIAccount, "tok")
	s.Err = boom

	if _, err := s.GetToken(APIAccount); !errors.Is(err, boom) {
		t.Errorf("expected injected error, got %v", err)
	}
}
