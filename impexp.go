package taxfolio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"
)

// this file contains the codecs for the three CSV file kinds the pipeline
// exchanges: the per-platform trade history, the per-year profit files and
// the per-year holdings files. The column sets are a boundary contract with
// the brokerage exports and the report pass; they must not change.

var (
	historyHeader  = []string{"股票代码", "数量", "成交价格", "买卖方向", "结算币种", "合计手续费", "交易时间"}
	profitHeader   = []string{"配对原因", "股票代码", "卖出价格", "成本价", "数量", "利润", "时间", "结算币种"}
	holdingsHeader = []string{"股票代码", "结算币种", "年初持有数量", "年初平均成本", "年末持有数量", "年末平均成本"}
)

// utf8BOM prefixes the profit and holdings files, like the upstream exports
// (pandas' utf-8-sig), so spreadsheet tools detect the encoding.
const utf8BOM = "\ufeff"

// timeFormat is the second-precision timestamp format of all files.
const timeFormat = "2006-01-02 15:04:05"

// readTimeFormats are the accepted input timestamp formats. Brokerage
// exports carry either a bare timestamp or one with a zone offset.
var readTimeFormats = []string{
	timeFormat,
	"2006-01-02 15:04:05-07:00",
	time.RFC3339,
}

// DataFormatError reports a malformed field in an input file.
type DataFormatError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("line %d: invalid %s %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *DataFormatError) Unwrap() error { return e.Err }

func parseTime(s string) (time.Time, error) {
	for _, layout := range readTimeFormats {
		if at, err := time.Parse(layout, s); err == nil {
			return at.Truncate(time.Second), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp format (want %q)", timeFormat)
}

// isNaN reports a not-a-number numeric field as the exports write it.
func isNaN(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "nan")
}

// DecodeHistory reads a platform trade history CSV. The header must match
// the history contract exactly. Malformed numeric fields fail with a
// DataFormatError, except an option's not-a-number price, which is kept and
// later coerced to an effective price of 0. Unknown side tags fail.
func DecodeHistory(r io.Reader) ([]Trade, error) {
	cr := csv.NewReader(stripBOM(r))
	cr.FieldsPerRecord = len(historyHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read history header: %w", err)
	}
	if !slices.Equal(header, historyHeader) {
		return nil, fmt.Errorf("unexpected history header %v, want %v", header, historyHeader)
	}

	var trades []Trade
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		symbol := strings.TrimSpace(rec[0])
		currency := strings.TrimSpace(rec[4])

		qty, err := ParseQuantity(rec[1])
		if err != nil {
			return nil, &DataFormatError{Line: line, Field: historyHeader[1], Value: rec[1], Err: err}
		}
		side, err := ParseSide(strings.TrimSpace(rec[3]))
		if err != nil {
			return nil, &DataFormatError{Line: line, Field: historyHeader[3], Value: rec[3], Err: err}
		}
		fee, err := ParseMoney(rec[5], currency)
		if err != nil {
			return nil, &DataFormatError{Line: line, Field: historyHeader[5], Value: rec[5], Err: err}
		}
		at, err := parseTime(strings.TrimSpace(rec[6]))
		if err != nil {
			return nil, &DataFormatError{Line: line, Field: historyHeader[6], Value: rec[6], Err: err}
		}

		t := NewTrade(symbol, side, qty, M(0, currency), fee, currency, at)
		if isNaN(rec[2]) && t.IsOption() {
			t.priceNaN = true
		} else {
			price, err := ParseMoney(rec[2], currency)
			if err != nil {
				return nil, &DataFormatError{Line: line, Field: historyHeader[2], Value: rec[2], Err: err}
			}
			t.Price = price
		}
		trades = append(trades, t)
	}
	return trades, nil
}

// EncodeHistory writes trades in the platform history format, in the order
// given. The history file carries no BOM, matching the downloader's output.
func EncodeHistory(w io.Writer, trades []Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(historyHeader); err != nil {
		return err
	}
	for _, t := range trades {
		price := t.Price.Plain()
		if t.priceNaN {
			price = ""
		}
		rec := []string{
			t.Symbol,
			t.Quantity.String(),
			price,
			t.Side.Tag(),
			t.Currency,
			t.Fee.Plain(),
			t.Time.Format(timeFormat),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeProfits writes one year's profit rows, closings first then the
// summary rows, exactly as flushed.
func EncodeProfits(w io.Writer, rows []Closing) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(profitHeader); err != nil {
		return err
	}
	for _, c := range rows {
		rec := []string{
			string(c.Reason),
			c.Symbol,
			c.ClosePrice.Plain(),
			c.CostPrice.Plain(),
			c.Quantity.String(),
			c.Profit.Plain(),
			c.Time.Format(timeFormat),
			c.Currency,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeProfits reads a per-year profit file back, summary rows included.
func DecodeProfits(r io.Reader) ([]Closing, error) {
	cr := csv.NewReader(stripBOM(r))
	cr.FieldsPerRecord = len(profitHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read profit header: %w", err)
	}
	if !slices.Equal(header, profitHeader) {
		return nil, fmt.Errorf("unexpected profit header %v, want %v", header, profitHeader)
	}

	var rows []Closing
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		currency := strings.TrimSpace(rec[7])
		closePrice, err := ParseMoney(rec[2], currency)
		if err != nil {
			return nil, &DataFormatError{Line: line, Field: profitHeader[2], Value: rec[2], Err: err}
		}
		costPrice, err := ParseMoney(rec[3], currency)
		if err != nil {
			return nil, &DataFormatError{Line: line, Field: profitHeader[3], Value: rec[3], Err: err}
		}
		qty, err := ParseQuantity(rec[4])
		if err != nil {
			return nil, &DataFormatError{Line: line, Field: profitHeader[4], Value: rec[4], Err: err}
		}
		profit, err := ParseMoney(rec[5], currency)
		if err != nil {
			return nil, &DataFormatError{Line: line, Field: profitHeader[5], Value: rec[5], Err: err}
		}
		at, err := parseTime(strings.TrimSpace(rec[6]))
		if err != nil {
			return nil, &DataFormatError{Line: line, Field: profitHeader[6], Value: rec[6], Err: err}
		}
		rows = append(rows, Closing{
			Reason:     Reason(rec[0]),
			Symbol:     rec[1],
			ClosePrice: closePrice,
			CostPrice:  costPrice,
			Quantity:   qty,
			Profit:     profit,
			Time:       at,
			Currency:   currency,
		})
	}
	return rows, nil
}

// EncodeHoldings writes one year's holdings snapshot.
func EncodeHoldings(w io.Writer, y YearHoldings) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(holdingsHeader); err != nil {
		return err
	}
	for _, row := range y.Rows() {
		rec := []string{
			row.Symbol,
			row.Currency,
			row.StartQty.String(),
			row.StartAvgCost.Plain(),
			row.EndQty.String(),
			row.EndAvgCost.Plain(),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// stripBOM removes a leading UTF-8 byte order mark, if any.
func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(utf8BOM))
	if err == nil && string(head) == utf8BOM {
		br.Discard(len(utf8BOM))
	}
	return br
}

// File name contract. The report pass locates per-year files purely by
// these patterns.

// HistoryFileName returns the trade history file name for a platform.
func HistoryFileName(platform string) string {
	return platform + "_history.csv"
}

// ProfitFileName returns the per-year profit file name for a platform and
// method, e.g. "futu_moving_avg_profit_2023.csv".
func ProfitFileName(platform string, m Method, year int) string {
	return fmt.Sprintf("%s_%s_profit_%d.csv", platform, m, year)
}

// HoldingsFileName returns the per-year holdings snapshot file name.
func HoldingsFileName(platform string, year int) string {
	return fmt.Sprintf("%s_%s_holdings_%d.csv", platform, MovingAverage, year)
}
