// Command generate produces synthetic statement exports for manual testing
// of the import pipeline. Run it with `go run generate.go` from this
// directory; the go tool otherwise ignores testdata trees.
//
// Examples:
//
//	go run generate.go -format=hdfc -count=50
//	go run generate.go -format=ofx -output=../generated/sample.ofx
//	go run generate.go -format=all -seed=7
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var descriptions = []string{
	"SALARY CREDIT",
	"UPI/GROCERIES",
	"ATM WITHDRAWAL",
	"ELECTRICITY BILL",
	"MUTUAL FUND SIP",
	"INTEREST CREDIT",
	"CARD PAYMENT",
	"RENT TRANSFER",
}

func main() {
	var (
		format    = flag.String("format", "all", "Export format: hdfc, icici, generic, ofx, all")
		count     = flag.Int("count", 25, "Number of transactions per file")
		outputDir = flag.String("output-dir", "../generated", "Output directory for generated files")
		output    = flag.String("output", "", "Explicit output file (single format only)")
		seed      = flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	formats := []string{*format}
	if *format == "all" {
		if *output != "" {
			log.Fatal("-output needs a single -format")
		}
		formats = []string{"hdfc", "icici", "generic", "ofx"}
	}

	for _, f := range formats {
		path := *output
		if path == "" {
			ext := "csv"
			if f == "ofx" {
				ext = "ofx"
			}
			path = filepath.Join(*outputDir, fmt.Sprintf("sample_%s.%s", f, ext))
		}

		var content string
		switch f {
		case "hdfc":
			content = generateCSV(rng, *count, "Date,Narration,Withdrawal Amt,Deposit Amt,Closing Balance", creditDebitRow)
		case "icici":
			content = generateCSV(rng, *count, "Transaction Date,Transaction Remarks,Withdrawal,Deposit,Balance", creditDebitRow)
		case "generic":
			content = generateCSV(rng, *count, "Date,Description,Amount,Type,Balance", signedAmountRow)
		case "ofx":
			content = generateOFX(rng, *count)
		default:
			log.Fatalf("Unknown format: %s", f)
		}

		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		fmt.Printf("Wrote %d transactions to %s\n", *count, path)
	}
}

// creditDebitRow emits separate withdrawal and deposit columns the way
// Indian bank exports do.
func creditDebitRow(rng *rand.Rand, date time.Time, desc string, amount, balance float64) string {
	debit, credit := "", ""
	if amount < 0 {
		debit = fmt.Sprintf("%.2f", -amount)
	} else {
		credit = fmt.Sprintf("%.2f", amount)
	}
	return fmt.Sprintf("%s,%s,%s,%s,%.2f", date.Format("2006-01-02"), desc, debit, credit, balance)
}

// signedAmountRow emits a single signed amount column plus a DR/CR type
func signedAmountRow(rng *rand.Rand, date time.Time, desc string, amount, balance float64) string {
	txnType := "CR"
	if amount < 0 {
		txnType = "DR"
	}
	return fmt.Sprintf("%s,%s,%.2f,%s,%.2f", date.Format("2006-01-02"), desc, amount, txnType, balance)
}

func generateCSV(rng *rand.Rand, count int, header string, row func(*rand.Rand, time.Time, string, float64, float64) string) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")

	date := time.Now().AddDate(0, -1, 0)
	balance := 10000.0 + rng.Float64()*40000
	for i := 0; i < count; i++ {
		date = date.AddDate(0, 0, rng.Intn(3))
		amount := randomAmount(rng)
		balance += amount
		desc := descriptions[rng.Intn(len(descriptions))]
		b.WriteString(row(rng, date, desc, amount, balance))
		b.WriteString("\n")
	}

	return b.String()
}

func generateOFX(rng *rand.Rand, count int) string {
	var b strings.Builder
	b.WriteString("OFXHEADER:100\nDATA:OFXSGML\nVERSION:102\n\n")
	b.WriteString("<OFX><BANKMSGSRSV1><STMTTRNRS><STMTRS><BANKTRANLIST>\n")

	date := time.Now().AddDate(0, -1, 0)
	balance := 10000.0 + rng.Float64()*40000
	for i := 0; i < count; i++ {
		date = date.AddDate(0, 0, rng.Intn(3))
		amount := randomAmount(rng)
		balance += amount
		txnType := "CREDIT"
		if amount < 0 {
			txnType = "DEBIT"
		}
		desc := descriptions[rng.Intn(len(descriptions))]
		fmt.Fprintf(&b, "<STMTTRN>\n<TRNTYPE>%s\n<DTPOSTED>%s\n<TRNAMT>%.2f\n<MEMO>%s\n</STMTTRN>\n",
			txnType, date.Format("20060102"), amount, desc)
	}

	fmt.Fprintf(&b, "</BANKTRANLIST>\n<LEDGERBAL><BALAMT>%.2f</LEDGERBAL>\n", balance)
	b.WriteString("</STMTRS></STMTTRNRS></BANKMSGSRSV1></OFX>\n")
	return b.String()
}

func randomAmount(rng *rand.Rand) float64 {
	// Mostly small expenses with the occasional salary-sized credit.
	if rng.Float64() < 0.15 {
		return 20000 + rng.Float64()*40000
	}
	return -(50 + rng.Float64()*4950)
}
