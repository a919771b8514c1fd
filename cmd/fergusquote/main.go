package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"fergusquote/internal"
	"fergusquote/internal/config"
	"fergusquote/internal/fergus"
	"fergusquote/internal/pipeline"
	"fergusquote/internal/storage"
	"fergusquote/internal/util"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	svc := pipeline.NewService(db, cfg)

	cmd := os.Args[1]
	switch cmd {
	case "import":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "takeoff export path")
		inType := fs.String("type", "", "xlsx|xml (default: from extension)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		res, err := svc.ImportFile(*input, *inType)
		must(err)
		fmt.Printf("imported batch id=%d items=%d jobHint=%s\n", res.Batch.ID, res.Batch.ItemCount, orDash(res.JobHint))
		for _, g := range pipeline.GroupNames(res.Items) {
			fmt.Printf("  group: %s\n", g)
		}
	case "validate":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		batchID := fs.Int("batchId", 0, "batch id")
		groups := fs.String("groups", "", "comma-separated group filter")
		_ = fs.Parse(os.Args[2:])
		items, err := svc.BatchItems(*batchID, splitGroups(*groups))
		must(err)
		problems := pipeline.ValidateItems(cfg, items)
		if len(problems) == 0 {
			fmt.Println("no problems found")
			return
		}
		printProblems(cfg, problems)
		os.Exit(1)
	case "preview":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		batchID := fs.Int("batchId", 0, "batch id")
		groups := fs.String("groups", "", "comma-separated group filter")
		sortBy := fs.String("sortBy", "", "column to sort by within each section")
		desc := fs.Bool("desc", false, "sort descending")
		_ = fs.Parse(os.Args[2:])
		items, err := svc.BatchItems(*batchID, splitGroups(*groups))
		must(err)
		rows, grandTotal := pipeline.BuildPreviewRows(cfg, items)
		if *sortBy != "" {
			rows = pipeline.SortGroupedRows(rows, *sortBy, *desc)
		}
		printPreview(rows)
		fmt.Printf("Total Quote Price: %s\n", util.FormatMoney(grandTotal))
	case "export:csv":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		batchID := fs.Int("batchId", 0, "batch id")
		out := fs.String("out", "", "output csv path")
		groups := fs.String("groups", "", "comma-separated group filter")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--out is required"))
		}
		items, err := svc.BatchItems(*batchID, splitGroups(*groups))
		must(err)
		must(pipeline.ExportPreviewCSV(cfg, items, *out))
		fmt.Printf("exported %d rows to %s\n", len(items), *out)
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		batchID := fs.Int("batchId", 0, "batch id")
		out := fs.String("out", "", "output xlsx path")
		groups := fs.String("groups", "", "comma-separated group filter")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--out is required"))
		}
		items, err := svc.BatchItems(*batchID, splitGroups(*groups))
		must(err)
		must(pipeline.ExportPreviewXLSX(cfg, items, *out))
		fmt.Printf("exported %d rows to %s\n", len(items), *out)
	case "batches":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 20, "max batches to list")
		_ = fs.Parse(os.Args[2:])
		rows, err := svc.RecentBatches(*limit)
		must(err)
		if len(rows) == 0 {
			fmt.Println("no batches imported yet")
			return
		}
		for _, b := range rows {
			fmt.Printf("batch id=%d file=%s items=%d jobHint=%s imported=%s\n",
				b.ID, b.FileName, b.ItemCount, orDash(b.JobHint), b.CreatedAt)
			pushes, err := svc.PushHistory(b.ID)
			must(err)
			for _, p := range pushes {
				fmt.Printf("  push %s job=%s quoteId=%d at %s\n", p.Action, p.JobNo, p.QuoteID, p.CreatedAt)
			}
		}
	case "job:lookup":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		jobNo := fs.String("job", "", "job number")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*jobNo) == "" {
			must(fmt.Errorf("--job is required"))
		}
		must(cfg.Require("FERGUS_API_TOKEN", cfg.FergusAPIToken))
		client := fergus.NewClient(cfg)
		job, err := client.MustJobByNumber(context.Background(), util.ExtractDigits(*jobNo))
		must(err)
		fmt.Printf("Job No: %s\nDescription: %s\nCustomer: %s\nQuote Accepted: %v\n", job.JobNo, job.Description, job.Customer, job.QuoteAccepted)
		quotes, err := client.ListQuotes(context.Background(), job.ID)
		must(err)
		for _, q := range quotes {
			fmt.Printf("  quote id=%d %s\n", q.ID, quoteLabel(q))
		}
	case "quote:push":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		batchID := fs.Int("batchId", 0, "batch id")
		jobNo := fs.String("job", "", "job number")
		quoteID := fs.Int("quoteId", 0, "existing quote id to update (0 creates)")
		groups := fs.String("groups", "", "comma-separated group filter")
		title := fs.String("title", "", "quote title (default: job description)")
		force := fs.Bool("force", false, "push despite validation problems")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*jobNo) == "" {
			must(fmt.Errorf("--job is required"))
		}
		runPush(svc, cfg, pipeline.PushRequest{
			BatchID: *batchID,
			JobNo:   *jobNo,
			QuoteID: *quoteID,
			Groups:  splitGroups(*groups),
			Title:   *title,
		}, *force)
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "takeoff export path")
		inType := fs.String("type", "", "xlsx|xml (default: from extension)")
		jobNo := fs.String("job", "", "job number (default: hint from the file)")
		quoteID := fs.Int("quoteId", 0, "existing quote id to update (0 creates)")
		force := fs.Bool("force", false, "push despite validation problems")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		res, err := svc.ImportFile(*input, *inType)
		must(err)
		fmt.Printf("imported batch id=%d items=%d\n", res.Batch.ID, res.Batch.ItemCount)
		target := strings.TrimSpace(*jobNo)
		if target == "" {
			target = res.JobHint
		}
		if target == "" {
			target = svc.LastJobNo()
		}
		if target == "" {
			must(fmt.Errorf("no job number: pass --job or use a file with a job-number column"))
		}
		runPush(svc, cfg, pipeline.PushRequest{BatchID: res.Batch.ID, JobNo: target, QuoteID: *quoteID}, *force)
	default:
		usage()
		os.Exit(1)
	}
}

func runPush(svc *pipeline.Service, cfg config.Config, req pipeline.PushRequest, force bool) {
	must(cfg.Require("FERGUS_API_TOKEN", cfg.FergusAPIToken))
	items, err := svc.BatchItems(req.BatchID, req.Groups)
	must(err)
	problems := pipeline.ValidateItems(cfg, items)
	if len(problems) > 0 {
		fmt.Println("validation problems:")
		printProblems(cfg, problems)
		if !force {
			must(fmt.Errorf("refusing to push with %d validation problem(s); use --force to override", len(problems)))
		}
	}

	result, err := svc.Push(context.Background(), req)
	must(err)
	fmt.Printf("quote %s: job=%s quoteId=%d\n", result.Action, result.JobNo, result.QuoteID)
	fmt.Printf("open %s\n", result.WebURL)
}

func printProblems(cfg config.Config, problems []internal.ValidationProblem) {
	for _, line := range pipeline.FormatProblems(problems, cfg.ProblemPreviewLimit) {
		fmt.Println("  " + line)
	}
}

func printPreview(rows []pipeline.PreviewRow) {
	for _, row := range rows {
		switch row.Kind {
		case pipeline.RowSection:
			fmt.Printf("== %s ==\n", row.Cells[pipeline.ColName])
		case pipeline.RowSubtotal:
			fmt.Printf("%60s  %s\n", "Subtotal", row.Cells[pipeline.ColLineTotal])
		default:
			fmt.Printf("  %-40s %10s %12s %12s %12s\n",
				row.Cells[pipeline.ColName],
				row.Cells[pipeline.ColQty],
				row.Cells[pipeline.ColCostEach],
				row.Cells[pipeline.ColPriceEach],
				row.Cells[pipeline.ColLineTotal])
		}
	}
}

func quoteLabel(q internal.QuoteSummary) string {
	var status []string
	if q.IsAccepted {
		status = append(status, "Accepted")
	}
	if q.IsSent {
		status = append(status, "Sent")
	}
	if len(status) == 0 {
		status = append(status, "Draft")
	}
	created := strings.SplitN(q.LastModified, "T", 2)[0]
	return fmt.Sprintf("v%d - %s (%s)", q.VersionNumber, strings.Join(status, "/"), created)
}

func splitGroups(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func usage() {
	fmt.Println("usage: fergusquote <command>")
	fmt.Println("commands:")
	fmt.Println("  import --input=takeoff.xlsx [--type=xlsx|xml]")
	fmt.Println("  validate --batchId=1 [--groups=a,b]")
	fmt.Println("  preview --batchId=1 [--groups=a,b] [--sortBy=Price Each] [--desc]")
	fmt.Println("  export:csv --batchId=1 --out=./out/preview.csv")
	fmt.Println("  export:xlsx --batchId=1 --out=./out/preview.xlsx")
	fmt.Println("  batches [--limit=20]")
	fmt.Println("  job:lookup --job=6811")
	fmt.Println("  quote:push --batchId=1 --job=6811 [--quoteId=42] [--groups=a,b] [--force]")
	fmt.Println("  run --input=takeoff.xml [--job=6811] [--quoteId=42] [--force]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
