package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Imports vehicle registrations from a CSV file into the registry via
// the admin API.
//
// CSV columns: plate_number,owner_name,state,vehicle_type,color,year,plate_type
//
// Usage:
//   go run import_registry.go <csv-file> <service-url> <access-token>

type registerRequest struct {
	PlateNumber string `json:"plate_number"`
	OwnerName   string `json:"owner_name"`
	State       string `json:"state,omitempty"`
	VehicleType string `json:"vehicle_type,omitempty"`
	Color       string `json:"color,omitempty"`
	Year        int    `json:"year,omitempty"`
	PlateType   string `json:"plate_type,omitempty"`
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: import_registry <csv-file> <service-url> <access-token>")
		os.Exit(1)
	}
	csvPath, baseURL, token := os.Args[1], strings.TrimRight(os.Args[2], "/"), os.Args[3]

	file, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open %s: %v\n", csvPath, err)
		os.Exit(1)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 7

	client := &http.Client{Timeout: 30 * time.Second}

	var imported, failed int
	for line := 1; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "line %d: %v\n", line, err)
			failed++
			continue
		}
		if line == 1 && strings.EqualFold(row[0], "plate_number") {
			continue // header row
		}

		year, _ := strconv.Atoi(strings.TrimSpace(row[5]))
		req := registerRequest{
			PlateNumber: strings.TrimSpace(row[0]),
			OwnerName:   strings.TrimSpace(row[1]),
			State:       strings.TrimSpace(row[2]),
			VehicleType: strings.TrimSpace(row[3]),
			Color:       strings.TrimSpace(row[4]),
			Year:        year,
			PlateType:   strings.TrimSpace(row[6]),
		}

		if err := register(client, baseURL, token, req); err != nil {
			fmt.Fprintf(os.Stderr, "line %d (%s): %v\n", line, req.PlateNumber, err)
			failed++
			continue
		}
		imported++
		fmt.Printf("imported %s (%s)\n", req.PlateNumber, req.OwnerName)
	}

	fmt.Printf("done: %d imported, %d failed\n", imported, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func register(client *http.Client, baseURL, token string, req registerRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/registry", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		payload, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	return nil
}
