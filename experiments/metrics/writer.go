package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

type AgentRecord struct {
	ID         int
	Difficulty string
	Depth      int
	Goroutines int
	Weights    string
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentRecord.ID of player 0
	Agent2 int // AgentRecord.ID of player 1
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// MoveRow is the parquet layout of a MoveRecord.
type MoveRow struct {
	Game        int32  `parquet:"game"`
	Step        int32  `parquet:"step"`
	Turn        int32  `parquet:"turn"`
	Player      int32  `parquet:"player"`
	Action      string `parquet:"action,dict"`
	Difficulty  string `parquet:"difficulty,dict"`
	Goroutines  int32  `parquet:"goroutines"`
	Depth       int32  `parquet:"depth"`
	DurationNs  int64  `parquet:"duration_ns"`
	Nodes       int64  `parquet:"nodes"`
	Evaluations int64  `parquet:"evaluations"`
	Cutoffs     int64  `parquet:"cutoffs"`
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> to hold one experiment's files.
func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) writeCSV(file string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.baseDir, file))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentRecord) error {
	header := []string{"id", "difficulty", "depth", "goroutines", "weights"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Difficulty,
			strconv.Itoa(config.Depth),
			strconv.Itoa(config.Goroutines),
			config.Weights,
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_player", "winner", "end_reason", "start_time", "end_time", "duration", "total_moves", "turns"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.StartingPlayer),
			strconv.Itoa(record.Winner),
			record.EndReason,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Turns),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "turn", "player", "action", "difficulty", "goroutines", "depth", "duration", "nodes", "evaluations", "cutoffs"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Turn),
			strconv.Itoa(record.Player),
			record.Action,
			record.Difficulty,
			strconv.Itoa(record.Goroutines),
			strconv.Itoa(record.Depth),
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Evaluations),
			strconv.Itoa(record.Cutoffs),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

// WriteMoveRecordsParquet writes move_records.parquet through a temp file so
// readers never see a partial file.
func (w *Writer) WriteMoveRecordsParquet(records []MoveRecord) error {
	rows := make([]MoveRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, MoveRow{
			Game:        int32(record.Game),
			Step:        int32(record.Step),
			Turn:        int32(record.Turn),
			Player:      int32(record.Player),
			Action:      record.Action,
			Difficulty:  record.Difficulty,
			Goroutines:  int32(record.Goroutines),
			Depth:       int32(record.Depth),
			DurationNs:  record.Duration.Nanoseconds(),
			Nodes:       int64(record.Nodes),
			Evaluations: int64(record.Evaluations),
			Cutoffs:     int64(record.Cutoffs),
		})
	}

	path := filepath.Join(w.baseDir, "move_records.parquet")
	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "move_record_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write move records parquet: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename move records parquet: %w", err)
	}
	return nil
}
