// Demo program: initializes a data directory, creates a table, inserts
// a few rows, checkpoints, and replays the WAL to show recovery.
// Run: go run ./cmd/seed [data_dir]
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/itzwaris/minsql/index"
	"github.com/itzwaris/minsql/storage"
	"github.com/itzwaris/minsql/wal"
)

func main() {
	dataDir := "databases/demo"
	if len(os.Args) > 1 {
		dataDir = os.Args[1]
	}

	h, err := storage.Init(dataDir, nil)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer h.Shutdown()

	schema, _ := json.Marshal(map[string]string{"id": "string", "name": "string", "age": "int"})
	if err := h.CreateTable("students", schema); err != nil {
		log.Fatalf("create table: %v", err)
	}

	primaryKey := index.NewBtree()
	rows := []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Age  int    `json:"age"`
	}{
		{"S001", "Alice", 20},
		{"S002", "Bob", 21},
		{"S003", "Carol", 19},
	}

	for _, r := range rows {
		payload, _ := json.Marshal(r)
		rowID, err := h.InsertRow("students", payload)
		if err != nil {
			log.Fatalf("insert row: %v", err)
		}
		if err := primaryKey.Insert([]byte(r.ID), rowID); err != nil {
			log.Fatalf("index insert: %v", err)
		}
	}

	if err := h.Checkpoint(); err != nil {
		log.Fatalf("checkpoint: %v", err)
	}

	fmt.Println("replaying WAL:")
	err = h.Recover(func(e *wal.Entry) error {
		fmt.Printf("  lsn=%d type=%d bytes=%d\n", e.LSN, e.Type, len(e.Data))
		return nil
	})
	if err != nil {
		log.Fatalf("recover: %v", err)
	}

	if v, ok := primaryKey.Search([]byte("S002")); ok {
		fmt.Printf("students.id=S002 -> row_id=%d\n", v)
	}
}
