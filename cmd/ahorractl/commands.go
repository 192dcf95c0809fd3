// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-ahorra/internal/adapter"
	"github.com/MKhiriev/go-ahorra/models"
)

var errUsage = errors.New("usage")

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, api adapter.ServerAdapter, args []string, out io.Writer) error
}

var commands = []command{
	{name: "balance", usage: "balance", run: balanceCmd},
	{name: "monthly", usage: "monthly [year]", run: monthlyCmd},
	{name: "notifications", usage: "notifications", run: notificationsCmd},
	{name: "records", usage: "records", run: recordsCmd},
	{name: "expense", usage: "expense <name> <amount> [category]", run: addRecordCmd(models.Expense)},
	{name: "income", usage: "income <name> <amount> [category]", run: addRecordCmd(models.Income)},
	{name: "delete-record", usage: "delete-record <id>", run: deleteRecordCmd},
	{name: "budgets", usage: "budgets", run: budgetsCmd},
	{name: "budget", usage: "budget <category> <amount>", run: addBudgetCmd},
	{name: "budget-status", usage: "budget-status <category>", run: budgetStatusCmd},
}

func printCommands(out io.Writer) {
	fmt.Fprintln(out, "\ncommands:")
	for _, c := range commands {
		fmt.Fprintf(out, "  %s\n", c.usage)
	}
}

func run(ctx context.Context, api adapter.ServerAdapter, args []string, out io.Writer) error {
	if len(args) == 0 {
		printCommands(out)
		return fmt.Errorf("%w: missing command", errUsage)
	}
	for _, c := range commands {
		if c.name != args[0] {
			continue
		}
		if err := c.run(ctx, api, args[1:], out); err != nil {
			if errors.Is(err, errUsage) {
				return fmt.Errorf("%w: ahorractl %s", errUsage, c.usage)
			}
			return err
		}
		return nil
	}
	printCommands(out)
	return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
}

func balanceCmd(ctx context.Context, api adapter.ServerAdapter, _ []string, out io.Writer) error {
	b, err := api.Balance(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "income\t%s\n", b.Income.StringFixed(2))
	fmt.Fprintf(tw, "expense\t%s\n", b.Expense.StringFixed(2))
	fmt.Fprintf(tw, "balance\t%s\n", b.Balance.StringFixed(2))
	return tw.Flush()
}

func monthlyCmd(ctx context.Context, api adapter.ServerAdapter, args []string, out io.Writer) error {
	year := time.Now().Year()
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil {
			return errUsage
		}
		year = parsed
	}

	months, err := api.Monthly(ctx, year)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "month\tincome\texpense\tsavings\t")
	for _, m := range months {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", m.Month.String()[:3], m.Income.StringFixed(2), m.Expense.StringFixed(2), m.Savings.StringFixed(2))
	}
	return tw.Flush()
}

func notificationsCmd(ctx context.Context, api adapter.ServerAdapter, _ []string, out io.Writer) error {
	notifications, err := api.Notifications(ctx)
	if err != nil {
		return err
	}
	for _, n := range notifications {
		fmt.Fprintf(out, "[%s] %s: %s\n", n.Kind, n.Title, n.Message)
	}
	return nil
}

func recordsCmd(ctx context.Context, api adapter.ServerAdapter, _ []string, out io.Writer) error {
	records, err := api.ListRecords(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "id\tdate\tkind\tcategory\tname\tamount")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.CreatedAt.Format(time.DateOnly), r.Kind, r.Category, r.Name, r.Amount.StringFixed(2))
	}
	return tw.Flush()
}

func addRecordCmd(kind models.RecordKind) func(context.Context, adapter.ServerAdapter, []string, io.Writer) error {
	return func(ctx context.Context, api adapter.ServerAdapter, args []string, out io.Writer) error {
		if len(args) < 2 || len(args) > 3 {
			return errUsage
		}
		amount, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("amount %q: %w", args[1], err)
		}
		in := models.RecordInput{Name: args[0], Amount: amount, Kind: kind}
		if len(args) == 3 {
			in.Category = args[2]
		}

		result, err := api.CreateRecord(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "record %d saved\n", result.Record.ID)
		if s := result.BudgetStatus; s != nil {
			printStatus(out, *s)
		}
		return nil
	}
}

func deleteRecordCmd(ctx context.Context, api adapter.ServerAdapter, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errUsage
	}
	if err = api.DeleteRecord(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(out, "record %d deleted\n", id)
	return nil
}

func budgetsCmd(ctx context.Context, api adapter.ServerAdapter, _ []string, out io.Writer) error {
	budgets, err := api.ListBudgets(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "id\tcategory\tlimit")
	for _, b := range budgets {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", b.ID, b.Category, b.Amount.StringFixed(2))
	}
	return tw.Flush()
}

func addBudgetCmd(ctx context.Context, api adapter.ServerAdapter, args []string, out io.Writer) error {
	if len(args) != 2 {
		return errUsage
	}
	amount, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("amount %q: %w", args[1], err)
	}

	b, err := api.CreateBudget(ctx, models.BudgetInput{Category: args[0], Amount: amount})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "budget %d for %s: %s\n", b.ID, b.Category, b.Amount.StringFixed(2))
	return nil
}

func budgetStatusCmd(ctx context.Context, api adapter.ServerAdapter, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errUsage
	}
	s, err := api.BudgetStatus(ctx, args[0])
	if err != nil {
		return err
	}
	printStatus(out, s)
	return nil
}

func printStatus(out io.Writer, s models.BudgetStatus) {
	if s.Level == models.LevelNoBudget {
		fmt.Fprintf(out, "%s: no budget, spent %s this month\n", s.Category, s.Spent.StringFixed(2))
		return
	}
	fmt.Fprintf(out, "%s: %s (%s of %s, %s%%)\n", s.Category, s.Level, s.Spent.StringFixed(2), s.Limit.StringFixed(2), s.Percent.String())
}
