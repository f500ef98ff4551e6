// Package nacha renders ACH batch files in the fixed-width NACHA format:
// 94-character File Header, Batch Header, Entry Detail, Batch Control and
// File Control records, blocked to a multiple of 10 records with "9" filler.
package nacha

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

const (
	// RecordLength is the fixed width of every NACHA record.
	RecordLength = 94
	// BlockingFactor is the number of records per block; files are padded to a multiple.
	BlockingFactor = 10

	serviceClassMixed = "200"

	// Checking-account transaction codes.
	TxnCodeCredit = "22"
	TxnCodeDebit  = "27"
)

// Entry is one entry-detail record to render.
type Entry struct {
	PayeeName     string
	RoutingNumber string // 9 digits, already checksum-validated by the caller via ValidateRoutingNumber
	AccountNumber string
	AmountCents   int64
	IsDebit       bool
	ID            string // Individual identification number field
}

// File describes a single-batch ACH file.
type File struct {
	ImmediateDestination string // ODFI routing number
	ImmediateOrigin      string // Company identification
	DestinationName      string
	OriginName           string
	CompanyName          string
	CompanyID            string
	EntryDescription     string // e.g. "VENDORPAY"
	EffectiveDate        time.Time
	CreationTime         time.Time
	BatchNumber          int64
	Entries              []Entry
}

// Totals are the control figures recomputed from the entry records.
type Totals struct {
	EntryCount       int
	EntryHash        int64
	TotalDebitCents  int64
	TotalCreditCents int64
}

// ComputeTotals derives control totals from the entries. Controls are always
// recomputed from the entry records, never carried separately.
func ComputeTotals(entries []Entry) Totals {
	t := Totals{EntryCount: len(entries)}
	var hashSum int64
	for _, e := range entries {
		hashSum += RoutingPrefix(e.RoutingNumber)
		if e.IsDebit {
			t.TotalDebitCents += e.AmountCents
		} else {
			t.TotalCreditCents += e.AmountCents
		}
	}
	t.EntryHash = HashTotal(hashSum)
	return t
}

// Build renders the complete file. Generation is all-or-nothing: every
// routing number is validated before any byte is written, and any failure
// returns a nil byte slice.
func (f File) Build() ([]byte, Totals, error) {
	if err := ValidateRoutingNumber(f.ImmediateDestination); err != nil {
		return nil, Totals{}, fmt.Errorf("immediate destination: %w", err)
	}
	for _, e := range f.Entries {
		if err := ValidateRoutingNumber(e.RoutingNumber); err != nil {
			return nil, Totals{}, fmt.Errorf("entry for %q: %w", e.PayeeName, err)
		}
		if e.AmountCents <= 0 {
			return nil, Totals{}, fmt.Errorf("entry for %q: amount must be positive", e.PayeeName)
		}
	}

	totals := ComputeTotals(f.Entries)

	var buf bytes.Buffer
	writeRecord(&buf, f.fileHeader())
	writeRecord(&buf, f.batchHeader())
	odfi := f.ImmediateDestination[:8]
	for i, e := range f.Entries {
		trace := fmt.Sprintf("%s%07d", odfi, i+1)
		writeRecord(&buf, entryDetail(e, trace))
	}
	writeRecord(&buf, f.batchControl(totals))

	recordCount := 4 + len(f.Entries) // file header, batch header, entries, both controls
	blockCount := (recordCount + BlockingFactor - 1) / BlockingFactor
	writeRecord(&buf, f.fileControl(totals, blockCount))

	// Pad to a full block with all-nines filler records.
	for i := recordCount; i < blockCount*BlockingFactor; i++ {
		writeRecord(&buf, strings.Repeat("9", RecordLength))
	}

	return buf.Bytes(), totals, nil
}

func writeRecord(buf *bytes.Buffer, record string) {
	buf.WriteString(record)
	buf.WriteByte('\n')
}

func (f File) fileHeader() string {
	return "1" +
		"01" +
		fmt.Sprintf("%10s", " "+f.ImmediateDestination) +
		fmt.Sprintf("%10s", f.ImmediateOrigin) +
		f.CreationTime.Format("060102") +
		f.CreationTime.Format("1504") +
		"A" +
		"094" +
		"10" +
		"1" +
		alpha(f.DestinationName, 23) +
		alpha(f.OriginName, 23) +
		alpha("", 8)
}

func (f File) batchHeader() string {
	return "5" +
		serviceClassMixed +
		alpha(f.CompanyName, 16) +
		alpha("", 20) +
		alpha(f.CompanyID, 10) +
		"PPD" +
		alpha(f.EntryDescription, 10) +
		f.EffectiveDate.Format("060102") +
		f.EffectiveDate.Format("060102") +
		alpha("", 3) +
		"1" +
		f.ImmediateDestination[:8] +
		fmt.Sprintf("%07d", f.BatchNumber)
}

func entryDetail(e Entry, trace string) string {
	code := TxnCodeCredit
	if e.IsDebit {
		code = TxnCodeDebit
	}
	return "6" +
		code +
		e.RoutingNumber[:8] +
		e.RoutingNumber[8:] +
		alpha(e.AccountNumber, 17) +
		fmt.Sprintf("%010d", e.AmountCents) +
		alpha(e.ID, 15) +
		alpha(e.PayeeName, 22) +
		alpha("", 2) +
		"0" +
		trace
}

func (f File) batchControl(t Totals) string {
	return "8" +
		serviceClassMixed +
		fmt.Sprintf("%06d", t.EntryCount) +
		fmt.Sprintf("%010d", t.EntryHash) +
		fmt.Sprintf("%012d", t.TotalDebitCents) +
		fmt.Sprintf("%012d", t.TotalCreditCents) +
		alpha(f.CompanyID, 10) +
		alpha("", 19) +
		alpha("", 6) +
		f.ImmediateDestination[:8] +
		fmt.Sprintf("%07d", f.BatchNumber)
}

func (f File) fileControl(t Totals, blockCount int) string {
	return "9" +
		fmt.Sprintf("%06d", 1) +
		fmt.Sprintf("%06d", blockCount) +
		fmt.Sprintf("%08d", t.EntryCount) +
		fmt.Sprintf("%010d", t.EntryHash) +
		fmt.Sprintf("%012d", t.TotalDebitCents) +
		fmt.Sprintf("%012d", t.TotalCreditCents) +
		alpha("", 39)
}

// alpha renders an alphanumeric field: upper-cased, left-justified,
// blank-padded and truncated to width. NACHA fields are ASCII-only, so runes
// outside the printable ASCII range become spaces; after that every rune is
// one byte and truncation cannot split a character.
func alpha(s string, width int) string {
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7E {
			return ' '
		}
		return r
	}, strings.ToUpper(s))
	if len(s) > width {
		s = s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
