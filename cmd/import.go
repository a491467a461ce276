/*
Copyright © 2025 WordSnap Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wordsnap/wordsnap/internal/adapter/repository"
	"github.com/wordsnap/wordsnap/internal/importer"
	"github.com/wordsnap/wordsnap/internal/infrastructure/config"
	"github.com/wordsnap/wordsnap/internal/infrastructure/database"
	"github.com/wordsnap/wordsnap/internal/usecase"
)

// importCmd loads vocabulary from an Excel or CSV file into a user's word list.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import words from an Excel or CSV file",
	Long: `Import vocabulary rows into a user's word list. Columns are fixed:
english, meaning, part of speech, example sentence, difficulty. The first
row is treated as a header unless --start-row is 1.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		userID, _ := cmd.Flags().GetString("user")
		sheet, _ := cmd.Flags().GetString("sheet")
		startRow, _ := cmd.Flags().GetInt("start-row")

		if file == "" {
			return fmt.Errorf("--file is required")
		}
		if userID == "" {
			return fmt.Errorf("--user is required")
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		pool, cleanup, err := database.NewConnection(cfg)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer cleanup()

		wordUC := usecase.NewWordUsecase(repository.NewWordRepository(pool))

		importCfg := importer.DefaultConfig()
		importCfg.FilePath = file
		importCfg.UserID = userID
		if sheet != "" {
			importCfg.SheetName = sheet
		}
		if startRow > 0 {
			importCfg.StartRow = startRow
		}

		result, err := importer.New(wordUC).ImportWords(cmd.Context(), importCfg)
		if err != nil {
			return fmt.Errorf("import words: %w", err)
		}

		cmd.Printf("processed %d rows: %d created, %d skipped, %d errors\n",
			result.TotalProcessed, result.Created, result.Skipped, len(result.Errors))
		for _, msg := range result.Errors {
			cmd.Println(msg)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("file", "f", "", "path to the .xlsx or .csv file")
	importCmd.Flags().StringP("user", "u", "", "user id owning the imported words")
	importCmd.Flags().String("sheet", "", "sheet name for Excel files (default Sheet1)")
	importCmd.Flags().Int("start-row", 0, "first data row, 1-based (default 2)")
}
