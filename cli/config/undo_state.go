package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/rrezende/hq-manager-cli/internal/ops"
)

// The undo stack survives across invocations so `hqman undo` can revert a
// mutation made by an earlier command.

var undoStateMutex sync.RWMutex

func GetUndoStatePath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "undo_state.yaml"), nil
}

func LoadUndoStack() (*ops.UndoStack, error) {
	undoStateMutex.RLock()
	defer undoStateMutex.RUnlock()

	statePath, err := GetUndoStatePath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(statePath); os.IsNotExist(err) {
		return &ops.UndoStack{}, nil
	}

	data, err := os.ReadFile(statePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read undo state: %w", err)
	}

	var stack ops.UndoStack
	if err := yaml.Unmarshal(data, &stack); err != nil {
		return nil, fmt.Errorf("failed to parse undo state: %w", err)
	}

	return &stack, nil
}

func SaveUndoStack(stack *ops.UndoStack) error {
	undoStateMutex.Lock()
	defer undoStateMutex.Unlock()

	statePath, err := GetUndoStatePath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(stack)
	if err != nil {
		return fmt.Errorf("failed to marshal undo state: %w", err)
	}

	tempPath := statePath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write undo state: %w", err)
	}

	if err := os.Rename(tempPath, statePath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save undo state: %w", err)
	}

	return nil
}
