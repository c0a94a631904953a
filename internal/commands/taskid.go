package commands

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrTaskIDRequired indicates no task id was provided.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskID parses the server-assigned task id from args.
// Ids are positive integers as printed by the list command.
func ParseTaskID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, ErrTaskIDRequired
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id: %s", args[0])
	}
	return id, nil
}
