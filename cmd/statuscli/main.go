package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
)

func main() {
	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://localhost:8080"
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Enter a service name to check (e.g., github): ")
	raw, _ := reader.ReadString('\n')
	raw = strings.TrimSpace(raw)
	if raw == "" {
		fmt.Println("Service name is required.")
		return
	}

	resp, err := http.Get(api + "/status?service=" + url.QueryEscape(raw))
	if err != nil {
		fmt.Println("Error contacting API:", err)
		return
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		fmt.Println("Bad response from API:", err)
		return
	}
	if resp.StatusCode != http.StatusOK {
		fmt.Println("API error:", body["error"])
		return
	}

	fmt.Printf("%s is %v (source: %v, %vms)\n", raw, body["status"], body["dataSource"], body["responseTime"])
}
