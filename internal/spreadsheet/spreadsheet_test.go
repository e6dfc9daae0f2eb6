package spreadsheet

import (
	"bytes"
	"testing"
)

func roundTrip(t *testing.T, headers []string, records []Record) []Record {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(&buf, headers, records); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return got
}

func TestReadMapsHeadersToFields(t *testing.T) {
	headers := []string{"username", "nama_peserta", "asal_sekolah"}
	records := []Record{
		{"username": "081234567890", "nama_peserta": "Budi", "asal_sekolah": "SMA 1"},
		{"username": "081298765432", "nama_peserta": "Siti", "asal_sekolah": "SMA 2"},
	}

	got := roundTrip(t, headers, records)
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0]["nama_peserta"] != "Budi" {
		t.Errorf("record 0 nama_peserta = %q, want Budi", got[0]["nama_peserta"])
	}
	if got[1]["username"] != "081298765432" {
		t.Errorf("record 1 username = %q, want 081298765432", got[1]["username"])
	}
}

func TestReadMissingCellsDefaultToEmpty(t *testing.T) {
	headers := []string{"no_soal", "pertanyaan", "kunci_jawaban"}
	records := []Record{
		{"no_soal": "1", "pertanyaan": "Ibukota Indonesia?"},
	}

	got := roundTrip(t, headers, records)
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if v, ok := got[0]["kunci_jawaban"]; !ok || v != "" {
		t.Errorf("missing column = %q (present %v), want empty string", v, ok)
	}
}

func TestWriteDropsUnknownKeys(t *testing.T) {
	headers := []string{"username"}
	records := []Record{
		{"username": "budi01", "id": "should-not-appear"},
	}

	got := roundTrip(t, headers, records)
	if _, ok := got[0]["id"]; ok {
		t.Error("id column leaked into the exported sheet")
	}
	if got[0]["username"] != "budi01" {
		t.Errorf("username = %q, want budi01", got[0]["username"])
	}
}

func TestReadRejectsEmptySheet(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := Read(&buf); err == nil {
		t.Error("expected an error for a sheet without headers")
	}
}
