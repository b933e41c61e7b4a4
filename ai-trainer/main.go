// Command ai-trainer pits AI difficulty tiers against each other through
// the backend HTTP API and reports win rates per pairing. It is the
// calibration harness for the ladder: a higher tier should not lose a
// head-to-head series against a lower one.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"
)

type arena struct {
	client       *http.Client
	baseURL      string
	pollInterval time.Duration
	variant      string
	logger       *log.Logger
}

type statusResponse struct {
	Status  string `json:"status"`
	Winner  string `json:"winner"`
	History []struct {
		IsAi         bool `json:"is_ai"`
		TurnComplete bool `json:"turn_complete"`
	} `json:"history"`
}

type startPayload struct {
	Settings struct {
		Mode            string `json:"mode"`
		Variant         string `json:"variant"`
		RedDifficulty   int    `json:"red_difficulty"`
		BlackDifficulty int    `json:"black_difficulty"`
	} `json:"settings"`
}

type pairingResult struct {
	redTier   int
	blackTier int
	redWins   int
	blackWins int
	draws     int
	turns     int
}

func main() {
	baseURL := flag.String("url", "http://127.0.0.1:8080", "backend base URL")
	games := flag.Int("games", 4, "games per pairing (split evenly across colors)")
	variant := flag.String("variant", "American", "variant to play")
	lowTier := flag.Int("low", 1, "lowest tier in the round robin")
	highTier := flag.Int("high", 10, "highest tier in the round robin")
	gameTimeout := flag.Duration("game-timeout", 5*time.Minute, "abort a game after this long")
	flag.Parse()

	a := &arena{
		client:       &http.Client{Timeout: 10 * time.Second},
		baseURL:      *baseURL,
		pollInterval: 200 * time.Millisecond,
		variant:      *variant,
		logger:       log.New(log.Writer(), "[arena] ", log.LstdFlags),
	}

	if err := a.ping(); err != nil {
		a.logger.Fatalf("backend unreachable at %s: %v", a.baseURL, err)
	}

	var results []pairingResult
	for red := *lowTier; red <= *highTier; red++ {
		for black := red + 1; black <= *highTier; black++ {
			result, err := a.runPairing(red, black, *games, *gameTimeout)
			if err != nil {
				a.logger.Fatalf("pairing %d vs %d failed: %v", red, black, err)
			}
			results = append(results, result)
			a.logger.Printf("tier %d vs tier %d: %d-%d-%d (avg %d turns)",
				result.redTier, result.blackTier, result.redWins, result.blackWins,
				result.draws, result.turns/max(1, *games))
		}
	}

	fmt.Println("\npairing          wins-losses-draws (from the lower tier's side)")
	for _, result := range results {
		fmt.Printf("%2d vs %2d         %d-%d-%d\n",
			result.redTier, result.blackTier, result.redWins, result.blackWins, result.draws)
	}
}

// runPairing plays games with the lower tier as red for half the series,
// then swaps colors; wins are tallied from the lower tier's side.
func (a *arena) runPairing(low, high, games int, timeout time.Duration) (pairingResult, error) {
	result := pairingResult{redTier: low, blackTier: high}
	for i := 0; i < games; i++ {
		lowIsRed := i%2 == 0
		red, black := low, high
		if !lowIsRed {
			red, black = high, low
		}
		status, err := a.playGame(red, black, timeout)
		if err != nil {
			return result, err
		}
		result.turns += countTurns(status)
		switch {
		case status.Winner == "":
			result.draws++
		case (status.Winner == "red") == lowIsRed:
			result.redWins++
		default:
			result.blackWins++
		}
	}
	return result, nil
}

func (a *arena) playGame(redTier, blackTier int, timeout time.Duration) (statusResponse, error) {
	var payload startPayload
	payload.Settings.Mode = "ai_vs_ai"
	payload.Settings.Variant = a.variant
	payload.Settings.RedDifficulty = redTier
	payload.Settings.BlackDifficulty = blackTier
	if err := a.post("/api/start", payload); err != nil {
		return statusResponse{}, err
	}

	deadline := time.Now().Add(timeout)
	for {
		if time.Now().After(deadline) {
			_ = a.post("/api/stop", nil)
			return statusResponse{}, fmt.Errorf("game %d vs %d timed out", redTier, blackTier)
		}
		time.Sleep(a.pollInterval)
		status, err := a.getStatus()
		if err != nil {
			return statusResponse{}, err
		}
		switch status.Status {
		case "red_won", "black_won", "draw":
			return status, nil
		}
	}
}

func (a *arena) ping() error {
	resp, err := a.client.Get(a.baseURL + "/api/ping")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping returned %s", resp.Status)
	}
	return nil
}

func (a *arena) getStatus() (statusResponse, error) {
	resp, err := a.client.Get(a.baseURL + "/api/status")
	if err != nil {
		return statusResponse{}, err
	}
	defer resp.Body.Close()
	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return statusResponse{}, err
	}
	return status, nil
}

func (a *arena) post(path string, payload any) error {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return err
		}
	}
	resp, err := a.client.Post(a.baseURL+path, "application/json", &body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %s", path, resp.Status)
	}
	return nil
}

// countTurns counts completed turns, not segments; a multi-jump chain is
// one turn.
func countTurns(status statusResponse) int {
	turns := 0
	for _, entry := range status.History {
		if entry.TurnComplete {
			turns++
		}
	}
	return turns
}
