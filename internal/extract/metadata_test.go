package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectMonth(t *testing.T) {
	tests := []struct {
		name       string
		stdout     string
		storedName string
		expected   string
	}{
		{
			name:     "explicit marker wins",
			stdout:   "Wykryty bank: santander\nMiesiąc wyciągu: Wrzesień 2025\nLiczba transakcji: 12",
			expected: "Wrzesień 2025",
		},
		{
			name:     "period marker",
			stdout:   "Za okres od 05/03/2024 do 31/03/2024",
			expected: "Marzec 2024",
		},
		{
			name:     "dotted date",
			stdout:   "saldo na dzień 12.07.2024",
			expected: "Lipiec 2024",
		},
		{
			name:     "iso date",
			stdout:   "pierwsza operacja 2025-09-01",
			expected: "Wrzesień 2025",
		},
		{
			name:     "bare month slash year",
			stdout:   "wyciąg za 03/2024",
			expected: "Marzec 2024",
		},
		{
			name:       "filename prefix fallback",
			stdout:     "no markers here",
			storedName: "202407_statement.pdf",
			expected:   "Lipiec 2024",
		},
		{
			name:       "filename prefix month out of range",
			stdout:     "",
			storedName: "202413_statement.pdf",
			expected:   Unknown,
		},
		{
			name:     "period with month 13 does not index the table",
			stdout:   "Za okres od 05/13/2024",
			expected: Unknown,
		},
		{
			name:     "marker shorter than three characters",
			stdout:   "Miesiąc wyciągu: ab",
			expected: Unknown,
		},
		{
			name:       "nothing matches",
			stdout:     "brak danych",
			storedName: "statement.pdf",
			expected:   Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectMonth(tt.stdout, tt.storedName)
			if got != tt.expected {
				t.Errorf("DetectMonth(%q, %q): got %q, want %q", tt.stdout, tt.storedName, got, tt.expected)
			}
		})
	}
}

func TestDetectMonthMarkerBeatsDates(t *testing.T) {
	stdout := "Miesiąc wyciągu: Luty 2025\nZa okres od 05/03/2024"
	if got := DetectMonth(stdout, ""); got != "Luty 2025" {
		t.Errorf("got %q, want marker value %q", got, "Luty 2025")
	}
}

func TestMonthName(t *testing.T) {
	tests := []struct {
		month    int
		expected string
	}{
		{1, "Styczeń"},
		{7, "Lipiec"},
		{12, "Grudzień"},
		{0, ""},
		{13, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := MonthName(tt.month); got != tt.expected {
			t.Errorf("MonthName(%d): got %q, want %q", tt.month, got, tt.expected)
		}
	}
}

func TestDetectBank(t *testing.T) {
	e := New(nil)

	tests := []struct {
		name       string
		stdout     string
		storedName string
		expected   string
	}{
		{
			name:     "known identifier lowercase",
			stdout:   "Wykryty bank: santander",
			expected: "Santander",
		},
		{
			name:     "known identifier uppercase",
			stdout:   "wyciąg SANTANDER za marzec",
			expected: "Santander",
		},
		{
			name:     "pekao canonical name",
			stdout:   "Bank Pekao S.A. rachunek 12",
			expected: "Bank Pekao",
		},
		{
			name:     "mbank keeps its casing",
			stdout:   "logowanie mBank online",
			expected: "mBank",
		},
		{
			name:     "marker with unlisted bank is title-cased",
			stdout:   "Wykryty bank: VELOBANK",
			expected: "Velobank",
		},
		{
			name:       "filename second token fallback",
			stdout:     "no bank mentioned",
			storedName: "wyciag_alior_marzec.pdf",
			expected:   "Alior",
		},
		{
			name:       "single token filename yields sentinel",
			stdout:     "",
			storedName: "statement.pdf",
			expected:   Unknown,
		},
		{
			name:       "marker shorter than two characters",
			stdout:     "Wykryty bank: x",
			storedName: "statement.pdf",
			expected:   Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.DetectBank(tt.stdout, tt.storedName)
			if got != tt.expected {
				t.Errorf("DetectBank(%q, %q): got %q, want %q", tt.stdout, tt.storedName, got, tt.expected)
			}
		})
	}
}

func TestDetectBankCustomTable(t *testing.T) {
	e := New([]Bank{{Name: "Credit Agricole", Identifiers: []string{"agricole"}}})

	if got := e.DetectBank("wyciąg CREDIT AGRICOLE", ""); got != "Credit Agricole" {
		t.Errorf("got %q, want %q", got, "Credit Agricole")
	}
	// The default table must not leak into a custom one.
	if got := e.DetectBank("santander", "statement.pdf"); got != Unknown {
		t.Errorf("got %q, want %q", got, Unknown)
	}
}

func TestLoadBanks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banks.json")
	data := `[{"name": "VeloBank", "identifiers": ["velobank", "getin"]}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	banks, err := LoadBanks(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(banks) != 1 || banks[0].Name != "VeloBank" || len(banks[0].Identifiers) != 2 {
		t.Errorf("unexpected table: %+v", banks)
	}

	if _, err := LoadBanks(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCountTransactions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mt940")
	// Three :61: records, one indented; the :86: line carries a cp1250
	// byte (0xB3 = ł) to make sure decoding does not break the scan.
	content := []byte(":20:STMT\n:25:12345678901234567890123456\n" +
		":61:240901C100.00NTRFNONREF\n:86:przelew w" + string(byte(0xB3)) + "asny\n" +
		"  :61:240902D50.00NTRFNONREF\n:86:oplata\n" +
		":61:240903C25.50NTRFNONREF\n:86:wyplata\n" +
		":62F:C240930123.45\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if got := CountTransactions(path); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
}

func TestCountTransactionsUnreadableFile(t *testing.T) {
	if got := CountTransactions(filepath.Join(t.TempDir(), "absent.mt940")); got != 0 {
		t.Errorf("got %d, want 0 for missing file", got)
	}
}

func TestPageCountUnreadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	if err := os.WriteFile(path, []byte("not a pdf at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := PageCount(path); got != 0 {
		t.Errorf("got %d, want 0 for non-PDF bytes", got)
	}
}
