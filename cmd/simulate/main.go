package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// simulate fires concurrent reservation requests at a single availability
// slot to exercise the per-slot lock: exactly one request should win, the
// rest should come back as occupied or contended.
func main() {
	var (
		baseURL        = flag.String("base-url", "http://localhost:8080", "API base URL")
		token          = flag.String("token", "", "bearer token (required)")
		availabilityID = flag.Int64("availability-id", 0, "availability slot to fight over (required)")
		patientEmail   = flag.String("patient-email", "", "patient email to book with (required)")
		workers        = flag.Int("workers", 20, "number of concurrent reservation attempts")
	)
	flag.Parse()

	if *token == "" || *availabilityID == 0 || *patientEmail == "" {
		log.Fatal("token, availability-id and patient-email are required")
	}

	var created, occupied, contended, other int64

	client := &http.Client{Timeout: 10 * time.Second}
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			body, _ := json.Marshal(map[string]any{
				"patient_email":   *patientEmail,
				"availability_id": *availabilityID,
				"reason":          fmt.Sprintf("simulated booking from worker %d", worker),
			})

			req, err := http.NewRequest(http.MethodPost, *baseURL+"/appointments", bytes.NewReader(body))
			if err != nil {
				atomic.AddInt64(&other, 1)
				return
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+*token)

			resp, err := client.Do(req)
			if err != nil {
				atomic.AddInt64(&other, 1)
				return
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()

			switch resp.StatusCode {
			case http.StatusCreated:
				atomic.AddInt64(&created, 1)
			case http.StatusBadRequest:
				atomic.AddInt64(&occupied, 1)
			case http.StatusConflict:
				atomic.AddInt64(&contended, 1)
			default:
				atomic.AddInt64(&other, 1)
			}
		}(i)
	}

	wg.Wait()

	fmt.Printf("workers=%d elapsed=%s\n", *workers, time.Since(start))
	fmt.Printf("created=%d occupied=%d contended=%d other=%d\n", created, occupied, contended, other)

	if created > 1 {
		log.Fatalf("DOUBLE BOOKING: %d appointments created for one slot", created)
	}
}
