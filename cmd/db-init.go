/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

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
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/eslsoft/datastd/internal/entity"
	"github.com/eslsoft/datastd/internal/infrastructure/config"
	"github.com/eslsoft/datastd/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

// dbInitCmd initializes the database schema, then optionally loads a word
// root dictionary from a seed CSV.
var dbInitCmd = &cobra.Command{
	Use:   "db-init",
	Short: "初始化数据库并导入词根词典",
	Long:  "执行数据库迁移。通过 --seed 指定词根词典 CSV 文件可同时导入词根，\n重复执行时已存在的词根 (按 en_abbr) 会被更新而非报错。",
	RunE: func(cmd *cobra.Command, args []string) error {
		seedPath, _ := cmd.Flags().GetString("seed")
		batch, _ := cmd.Flags().GetInt("batch")
		if err := runMigrations(); err != nil {
			return err
		}
		if seedPath == "" {
			return nil
		}
		return importSeedRoots(cmd.Context(), seedPath, batch)
	},
}

func init() {
	rootCmd.AddCommand(dbInitCmd)
	dbInitCmd.Flags().String("seed", "", "词根词典 CSV 文件路径 (留空则仅执行迁移)")
	dbInitCmd.Flags().Int("batch", 500, "批量插入大小")
}

// runMigrations applies the managed schema migrations to the target database.
func runMigrations() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.RunMigrations(ctx, cfg); err != nil {
		return fmt.Errorf("执行数据库迁移失败: %w", err)
	}

	log.Println("数据库迁移完成")
	return nil
}

func importSeedRoots(ctx context.Context, path string, batchSize int) error {
	start := time.Now()
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("开始导入词根词典: %s", path)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("打开词典文件失败: %w", err)
	}
	defer f.Close()

	roots, err := parseSeedCSV(f)
	if err != nil {
		return err
	}
	if len(roots) == 0 {
		return fmt.Errorf("词典文件 %s 中没有可导入的词根", path)
	}

	dsn, err := cfg.DatabaseURL()
	if err != nil {
		return fmt.Errorf("解析数据库 DSN 失败: %w", err)
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return err
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, "SELECT 1 FROM standard_word_roots LIMIT 1"); err != nil {
		return fmt.Errorf("standard_word_roots 表不存在或无法访问，请先执行迁移: %w", err)
	}

	total := 0
	for batchStart := 0; batchStart < len(roots); {
		end := batchStart + batchSize
		if end > len(roots) {
			end = len(roots)
		}
		if err := upsertSeedBatch(ctx, pool, roots[batchStart:end]); err != nil {
			return err
		}
		total += end - batchStart
		log.Printf("已导入 %d", total)
		batchStart = end
	}
	log.Printf("导入完成: %d 条, 耗时 %s", total, time.Since(start))
	return nil
}

// parseSeedCSV reads word roots from CSV columns
// cn_name, en_abbr, en_full_name, synonyms, data_type, remark.
// Synonyms within one cell are separated by semicolons. Trailing columns may
// be omitted; a header row is skipped when the first cell reads "cn_name".
func parseSeedCSV(r io.Reader) ([]*entity.WordRoot, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	roots := make([]*entity.WordRoot, 0, 256)
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("解析 CSV 失败: %w", err)
		}
		line++
		if line == 1 && len(record) > 0 && record[0] == "cn_name" {
			continue
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("第 %d 行的列数不足: 至少需要 cn_name 和 en_abbr", line)
		}
		root := &entity.WordRoot{
			CNName:     record[0],
			ENAbbr:     record[1],
			ENFullName: cell(record, 2),
			Synonyms:   splitSynonymCell(cell(record, 3)),
			DataType:   cell(record, 4),
			Remark:     cell(record, 5),
		}
		root.Normalize()
		if err := root.Validate(); err != nil {
			return nil, fmt.Errorf("第 %d 行: %w", line, err)
		}
		roots = append(roots, root)
	}
	return roots, nil
}

func cell(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}

// splitSynonymCell expands one CSV cell into a term set. Semicolons (ASCII or
// full-width) keep the synonym list inside a single column so plain
// spreadsheets can edit it.
func splitSynonymCell(s string) entity.TermSet {
	if s == "" {
		return nil
	}
	terms := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '；' })
	return entity.NewTermSet(terms...)
}

// upsertSeedBatch writes one batch of seed roots. Existing entries are
// refreshed in place so repeated imports of an evolving dictionary stay safe.
func upsertSeedBatch(ctx context.Context, pool *pgxpool.Pool, batch []*entity.WordRoot) error {
	if len(batch) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, root := range batch {
		b.Queue(`INSERT INTO standard_word_roots (cn_name, en_abbr, en_full_name, associated_terms, data_type, remark, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, now(), now())
				ON CONFLICT (en_abbr) DO UPDATE SET
					cn_name = EXCLUDED.cn_name,
					en_full_name = EXCLUDED.en_full_name,
					associated_terms = EXCLUDED.associated_terms,
					data_type = EXCLUDED.data_type,
					remark = EXCLUDED.remark,
					updated_at = now()`,
			root.CNName, root.ENAbbr, root.ENFullName, root.Synonyms.Join(), root.DataType, root.Remark)
	}
	br := pool.SendBatch(ctx, b)
	for i := 0; i < b.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return err
		}
	}
	return br.Close()
}
