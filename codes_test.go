package vesync

import "testing"

func TestClassify(t *testing.T) {
	t.Run("zero is always success", func(t *testing.T) {
		info := Classify(0)
		if !info.IsSuccess() {
			t.Errorf("Kind = %q, want success", info.Kind)
		}
		if info.Name != "SUCCESS" {
			t.Errorf("Name = %q, want SUCCESS", info.Name)
		}
	})

	t.Run("exact match", func(t *testing.T) {
		info := Classify(-11001000)
		if info.Name != "TOKEN_EXPIRED" {
			t.Errorf("Name = %q, want TOKEN_EXPIRED", info.Name)
		}
		if info.Kind != KindTokenError {
			t.Errorf("Kind = %q, want %q", info.Kind, KindTokenError)
		}
	})

	t.Run("family fallback truncates low digits", func(t *testing.T) {
		// -11001234 is not in the table; its family -11001000 is.
		info := Classify(-11001234)
		if info.Name != "TOKEN_EXPIRED" {
			t.Errorf("Name = %q, want TOKEN_EXPIRED via family lookup", info.Name)
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		info := Classify(123456789)
		if info.Kind != KindUnknown {
			t.Errorf("Kind = %q, want %q", info.Kind, KindUnknown)
		}
	})

	t.Run("cross region", func(t *testing.T) {
		info := Classify(-11260022)
		if info.Kind != KindCrossRegion {
			t.Errorf("Kind = %q, want %q", info.Kind, KindCrossRegion)
		}
	})

	t.Run("offline codes mark device offline", func(t *testing.T) {
		for _, code := range []int64{11, 4041004, -11300000, -11300027} {
			if Classify(code).Online != MarkOffline {
				t.Errorf("Classify(%d).Online != MarkOffline", code)
			}
		}
	})

	t.Run("device fault codes mark device online", func(t *testing.T) {
		info := Classify(11007000)
		if info.Online != MarkOnline {
			t.Error("short circuit code should imply the device is reachable")
		}
		if !info.CriticalError {
			t.Error("short circuit code should be critical")
		}
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		info := Classify(-11001000)
		info.Message = "mutated"
		if again := Classify(-11001000); again.Message == "mutated" {
			t.Error("mutating a classification corrupted the table")
		}
	})
}

func TestClassifyCode(t *testing.T) {
	t.Run("string zero", func(t *testing.T) {
		if !ClassifyCode("0").IsSuccess() {
			t.Error("ClassifyCode(\"0\") should be success")
		}
	})

	t.Run("numeric string", func(t *testing.T) {
		info := ClassifyCode("-11003000")
		if info.Kind != KindRateLimit {
			t.Errorf("Kind = %q, want %q", info.Kind, KindRateLimit)
		}
	})

	t.Run("non numeric string", func(t *testing.T) {
		if ClassifyCode("not-a-code").Kind != KindUnknown {
			t.Error("non-numeric code should classify unknown")
		}
	})
}

func TestIsCriticalError(t *testing.T) {
	if !IsCriticalError(11006000) {
		t.Error("open circuit should be critical")
	}
	if IsCriticalError(-11001000) {
		t.Error("token expiry is not a device fault")
	}
}
