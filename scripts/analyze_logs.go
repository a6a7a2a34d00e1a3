package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

type LogStats struct {
	TotalErrors       int
	SessionsCreated   int
	SessionsVerified  int
	SessionsPaid      int
	ProviderErrors    int
	StoreErrors       int
	NotifyFailures    int
	CreatedByGateway  map[string]int
	PaidByGateway     map[string]int
	ProviderByGateway map[string]int
	ErrorPatterns     map[string]int
}

var (
	gatewayField  = regexp.MustCompile(`gateway=(\w+)`)
	providerError = regexp.MustCompile(`Provider error \w+ (\w+) `)
	logMessage    = regexp.MustCompile(`\.go:\d+: (.*)$`)
)

func main() {
	logDir := flag.String("dir", "./logs", "directory holding the dated log files")
	day := flag.String("date", time.Now().Format("2006-01-02"), "log date to analyze (YYYY-MM-DD)")
	flag.Parse()

	stats := &LogStats{
		CreatedByGateway:  make(map[string]int),
		PaidByGateway:     make(map[string]int),
		ProviderByGateway: make(map[string]int),
		ErrorPatterns:     make(map[string]int),
	}

	analyzeErrorLogs(filepath.Join(*logDir, fmt.Sprintf("error-%s.log", *day)), stats)
	analyzeInfoLogs(filepath.Join(*logDir, fmt.Sprintf("info-%s.log", *day)), stats)

	printReport(*day, stats)
}

func analyzeErrorLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		stats.TotalErrors++

		switch {
		case strings.Contains(line, "Provider error"):
			stats.ProviderErrors++
			if m := providerError.FindStringSubmatch(line); m != nil {
				stats.ProviderByGateway[m[1]]++
			}
		case strings.Contains(line, "payment session"):
			stats.StoreErrors++
		case strings.Contains(line, "Failed to send paid notification"):
			stats.NotifyFailures++
		}

		extractErrorPattern(line, stats)
	}
}

func analyzeInfoLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.Contains(line, "Payment session created:") {
			stats.SessionsCreated++
			if m := gatewayField.FindStringSubmatch(line); m != nil {
				stats.CreatedByGateway[m[1]]++
			}
		}

		if strings.Contains(line, "Payment session verified:") {
			stats.SessionsVerified++
		}

		// logged once per session, on the PENDING to PAID transition
		if strings.Contains(line, "Payment session paid:") {
			stats.SessionsPaid++
			if m := gatewayField.FindStringSubmatch(line); m != nil {
				stats.PaidByGateway[m[1]]++
			}
		}
	}
}

// extractErrorPattern keys an error line by its message with ids stripped
func extractErrorPattern(line string, stats *LogStats) {
	m := logMessage.FindStringSubmatch(line)
	if m == nil {
		return
	}
	msg := m[1]
	if cut := strings.Index(msg, " session "); cut >= 0 {
		msg = msg[:cut]
	}
	stats.ErrorPatterns[strings.TrimSpace(msg)]++
}

func printReport(day string, stats *LogStats) {
	fmt.Println("\n=== Payment Log Analysis Report ===")
	fmt.Println("Log date:", day)
	fmt.Println("Generated:", time.Now().Format("2006-01-02 15:04:05"))

	fmt.Println("\n1. Session Statistics:")
	fmt.Printf("   Sessions Created: %d\n", stats.SessionsCreated)
	fmt.Printf("   Verifications: %d\n", stats.SessionsVerified)
	fmt.Printf("   Sessions Paid: %d\n", stats.SessionsPaid)

	fmt.Println("\n2. Sessions Per Gateway:")
	printTop(stats.CreatedByGateway, 5, "created")
	printTop(stats.PaidByGateway, 5, "paid")

	fmt.Println("\n3. Failures:")
	fmt.Printf("   Total Errors: %d\n", stats.TotalErrors)
	fmt.Printf("   Provider Errors: %d\n", stats.ProviderErrors)
	fmt.Printf("   Store Errors: %d\n", stats.StoreErrors)
	fmt.Printf("   Notification Failures: %d\n", stats.NotifyFailures)
	printTop(stats.ProviderByGateway, 5, "provider errors")

	fmt.Println("\n4. Most Common Errors:")
	printTop(stats.ErrorPatterns, 5, "occurrences")
}

func printTop(counts map[string]int, limit int, unit string) {
	type entry struct {
		key   string
		count int
	}

	var entries []entry
	for key, count := range counts {
		entries = append(entries, entry{key, count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})

	for i, e := range entries {
		if i >= limit {
			break
		}
		fmt.Printf("   %s: %d %s\n", e.key, e.count, unit)
	}
}
