package storage

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ExportText writes the top scores for gameID as a flat list: one integer
// per line, best first. limit <= 0 exports every score.
func (s *Store) ExportText(w io.Writer, gameID string, limit int) (int, error) {
	var (
		entries []ScoreEntry
		err     error
	)
	if limit > 0 {
		entries, err = s.TopScores(gameID, limit)
	} else {
		entries, err = s.AllScores(gameID)
	}
	if err != nil {
		return 0, err
	}

	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintln(bw, e.Score); err != nil {
			return 0, fmt.Errorf("storage: cannot write scores: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("storage: cannot write scores: %w", err)
	}
	return len(entries), nil
}

// ImportText reads a flat score list written by ExportText (or any file of
// one integer per line) and records every score for gameID under player.
// Blank lines are skipped. Nothing is imported if any line is malformed.
func (s *Store) ImportText(r io.Reader, gameID, player string) (int, error) {
	if player == "" {
		player = AnonymousPlayer
	}

	var scores []int
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		score, err := strconv.Atoi(text)
		if err != nil {
			return 0, fmt.Errorf("storage: line %d: invalid score %q", line, text)
		}
		scores = append(scores, score)
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("storage: cannot read scores: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	stmt, err := tx.Prepare("INSERT INTO scores (game_id, player, score) VALUES (?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare import: %w", err)
	}
	defer stmt.Close()

	for _, score := range scores {
		if _, err := stmt.Exec(gameID, player, score); err != nil {
			return 0, fmt.Errorf("storage: cannot import score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit import: %w", err)
	}
	return len(scores), nil
}
