package controllers

import (
	"fmt"
	"sync"
	"testing"
)

func TestVerificationCodeRoundTrip(t *testing.T) {
	storeVerificationCode("user@example.com", "123456")

	if !checkVerificationCode("user@example.com", "123456") {
		t.Error("stored code did not verify")
	}
	if checkVerificationCode("user@example.com", "654321") {
		t.Error("wrong code verified")
	}
	if checkVerificationCode("other@example.com", "123456") {
		t.Error("code verified for the wrong email")
	}

	clearVerificationCode("user@example.com")
	if checkVerificationCode("user@example.com", "123456") {
		t.Error("cleared code still verifies")
	}
}

func TestVerificationCodeConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := fmt.Sprintf("user%d@example.com", i%5)
			code := generateVerificationCode()
			storeVerificationCode(email, code)
			checkVerificationCode(email, code)
			clearVerificationCode(email)
		}(i)
	}
	wg.Wait()
}
