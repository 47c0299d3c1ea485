// Command eligibility prints the assignment overview for one or more users as
// JSON, using the same configuration as the API server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/enrollment-eligibility/internal/app"
	types "github.com/yungbote/enrollment-eligibility/internal/domain/enrollment"
)

type idList []int64

func (l *idList) String() string {
	parts := make([]string, 0, len(*l))
	for _, id := range *l {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

func (l *idList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid user id %q", part)
		}
		*l = append(*l, id)
	}
	return nil
}

func main() {
	var users idList
	var filterArg string
	var planID int64
	var timeout time.Duration
	flag.Var(&users, "user", "user id to evaluate (repeatable or comma separated)")
	flag.StringVar(&filterArg, "filter", "all", "open item filter: all or exclude_curricula")
	flag.Int64Var(&planID, "training-plan", 0, "print the path items of this training plan enrollment instead of the overview")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "overall deadline")
	flag.Parse()

	if len(users) == 0 {
		fmt.Fprintln(os.Stderr, "at least one -user is required")
		flag.Usage()
		os.Exit(2)
	}
	filter, err := types.ParseCourseEnrollmentFilter(filterArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	a, err := app.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	svc := a.Services.Enrollment
	failed := false
	for _, userID := range users {
		var out interface{}
		if planID > 0 {
			out, err = svc.GetTrainingPlanPathItems(ctx, userID, planID)
		} else {
			out, err = svc.GetAssignmentOverview(ctx, userID, filter)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "user %d: %v\n", userID, err)
			failed = true
			continue
		}
		if err := enc.Encode(map[string]interface{}{"user_id": userID, "result": out}); err != nil {
			fmt.Fprintf(os.Stderr, "encode: %v\n", err)
			failed = true
		}
	}
	if failed {
		a.Close()
		os.Exit(1)
	}
}
