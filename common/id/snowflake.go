package id

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init initializes the Snowflake node with the given node ID.
// The API server and the audit worker use different node IDs.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New generates a new globally unique int64 ID using the Snowflake algorithm.
// IDs are time-ordered, so ordering by ID is insertion order.
func New() int64 {
	return node.Generate().Int64()
}

// Parse converts a decimal ID taken from a path or request body.
func Parse(s string) (int64, error) {
	parsed, err := snowflake.ParseString(s)
	if err != nil {
		return 0, fmt.Errorf("parsing id %q: %w", s, err)
	}
	if parsed.Int64() <= 0 {
		return 0, fmt.Errorf("parsing id %q: must be positive", s)
	}
	return parsed.Int64(), nil
}
