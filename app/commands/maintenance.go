package commands

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/sha3"

	"helpboard/app/storage"
)

// checksumSuffix names the file next to a backup that holds its SHA3-256.
const checksumSuffix = ".sha3"

var errChecksumMismatch = errors.New("backup checksum mismatch")

func (a *app) archiver() (storage.Archiver, error) {
	archiver, ok := a.store.Backend().(storage.Archiver)
	if !ok {
		return nil, fmt.Errorf("the %s backend does not support backups", a.cfg.Backend)
	}
	return archiver, nil
}

func (a *app) backupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [file]",
		Short: "Write a full backup of the board",
		Long: `Writes a full backup of the store. Without a file argument the backup
goes to HELPBOARD_BACKUP_DIR with a timestamped name. A SHA3-256 checksum
is written next to it with a .sha3 suffix.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archiver, err := a.archiver()
			if err != nil {
				return err
			}
			path := filepath.Join(a.cfg.BackupDir, "helpboard-"+a.now().Format("20060102T150405Z")+".bak")
			if len(args) == 1 {
				path = args[0]
			}
			sum, err := writeBackup(archiver, path)
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Backup written to %s", path)
			subtle.Fprintf(cmd.OutOrStdout(), "sha3-256 %s\n", sum)
			return nil
		},
	}
}

func writeBackup(archiver storage.Archiver, path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()

	hash := sha3.New256()
	w := bufio.NewWriter(io.MultiWriter(f, hash))
	if err := archiver.Backup(w); err != nil {
		return "", err
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	if err := f.Sync(); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	sum := hex.EncodeToString(hash.Sum(nil))
	line := fmt.Sprintf("%s  %s\n", sum, filepath.Base(path))
	if err := os.WriteFile(path+checksumSuffix, []byte(line), 0o644); err != nil {
		return "", fmt.Errorf("failed to write checksum: %w", err)
	}
	return sum, nil
}

// verifyBackup compares the backup at path against its checksum file.
func verifyBackup(path string) error {
	data, err := os.ReadFile(path + checksumSuffix)
	if err != nil {
		return fmt.Errorf("failed to read checksum: %w", err)
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return fmt.Errorf("empty checksum file %s", path+checksumSuffix)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open backup: %w", err)
	}
	defer f.Close()

	hash := sha3.New256()
	if _, err := io.Copy(hash, f); err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	if hex.EncodeToString(hash.Sum(nil)) != fields[0] {
		return errChecksumMismatch
	}
	return nil
}

func (a *app) restoreCommand() *cobra.Command {
	var skipVerify bool
	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace the board with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archiver, err := a.archiver()
			if err != nil {
				return err
			}
			path := args[0]
			if !skipVerify {
				if err := verifyBackup(path); err != nil {
					return err
				}
			}
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open backup: %w", err)
			}
			defer f.Close()

			if clearer, ok := archiver.(storage.Clearer); ok {
				if err := clearer.Clear(); err != nil {
					return fmt.Errorf("failed to clear store: %w", err)
				}
			}
			if err := archiver.Restore(bufio.NewReader(f)); err != nil {
				return err
			}
			a.posts.Load()
			printSuccess(cmd.OutOrStdout(), "Restored %d posts from %s", len(a.posts.List()), path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "restore without checking the .sha3 checksum")
	return cmd
}

func (a *app) cleanCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete all posts, counters, users and the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete everything without --yes")
			}
			clearer, ok := a.store.Backend().(storage.Clearer)
			if !ok {
				return fmt.Errorf("the %s backend cannot be cleared", a.cfg.Backend)
			}
			if err := clearer.Clear(); err != nil {
				return fmt.Errorf("failed to clear store: %w", err)
			}
			a.posts.Load()
			printSuccess(cmd.OutOrStdout(), "Board cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
