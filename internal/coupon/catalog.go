package coupon

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

// DefaultRates are the built-in discount codes and their price multipliers
var DefaultRates = map[string]float64{
	"SAVE10": 0.9,
	"SAVE20": 0.8,
}

// Catalog maps discount codes to price multipliers.
// Codes match exactly, case included.
type Catalog struct {
	rates map[string]float64
	files []string
	mu    sync.RWMutex
}

// fileLoadResult holds the result of loading a single file
type fileLoadResult struct {
	index int
	rates map[string]float64
	err   error
}

// NewCatalog creates a catalog holding DefaultRates
func NewCatalog() *Catalog {
	c := &Catalog{
		rates: make(map[string]float64, len(DefaultRates)),
	}
	for code, rate := range DefaultRates {
		c.rates[code] = rate
	}
	return c
}

// LoadFromFiles reads additional codes from plain or gzipped files concurrently.
// Each non-blank line is "CODE MULTIPLIER"; lines starting with # are skipped.
// Built-in codes cannot be redefined. Nothing is merged unless every file loads.
func (c *Catalog) LoadFromFiles(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no file paths provided")
	}

	resultChan := make(chan fileLoadResult, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(index int, filePath string) {
			defer wg.Done()

			rates, err := loadFromFile(ctx, filePath)
			resultChan <- fileLoadResult{
				index: index,
				rates: rates,
				err:   err,
			}
		}(i, path)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]fileLoadResult, len(paths))
	for result := range resultChan {
		results[result.index] = result
	}

	for i, result := range results {
		if result.err != nil {
			return fmt.Errorf("failed to load %s: %w", paths[i], result.err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// later files win on duplicate file codes
	for _, result := range results {
		for code, rate := range result.rates {
			c.rates[code] = rate
		}
	}
	c.files = append(c.files, paths...)

	return nil
}

// loadFromFile opens a code file, transparently un-gzipping it
func loadFromFile(ctx context.Context, path string) (map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var r io.Reader = br

	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gzReader, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		r = gzReader
	}

	rates, err := parseRates(r)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rates, nil
}

// parseRates reads "CODE MULTIPLIER" lines. Multipliers must be in (0, 1]
// and codes must not be in DefaultRates.
func parseRates(r io.Reader) (map[string]float64, error) {
	rates := make(map[string]float64)
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected CODE MULTIPLIER, got %q", lineNo, line)
		}

		if _, builtin := DefaultRates[fields[0]]; builtin {
			return nil, fmt.Errorf("line %d: %s is a built-in code", lineNo, fields[0])
		}

		rate, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid multiplier: %w", lineNo, err)
		}
		if rate <= 0 || rate > 1 {
			return nil, fmt.Errorf("line %d: multiplier %v out of range (0, 1]", lineNo, rate)
		}

		rates[fields[0]] = rate
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return rates, nil
}

// Lookup returns the multiplier for code
func (c *Catalog) Lookup(code string) (float64, bool) {
	if code == "" {
		return 0, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	rate, ok := c.rates[code]
	return rate, ok
}

// GetStats returns statistics about the loaded codes
func (c *Catalog) GetStats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	files := make([]string, len(c.files))
	copy(files, c.files)

	return map[string]interface{}{
		"total_codes": len(c.rates),
		"total_files": len(c.files),
		"file_paths":  files,
	}
}
