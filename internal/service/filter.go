package service

import (
	"strings"

	"github.com/borda-dev/borda/internal/domain"
)

// ApplyDetailsFilter runs the in-memory filter pass over a board's
// group/task tree. It only reshapes the materialized response: filters
// apply in a fixed, cumulative order and a later filter never restores a
// task dropped by an earlier one. The stored document is never touched.
func ApplyDetailsFilter(board *domain.Board, filter domain.BoardDetailsFilter) {
	if filter.IsZero() {
		return
	}

	if filter.Txt != "" {
		board.Groups = filterGroupsByTxt(board.Groups, filter.Txt)
	}
	if filter.NoMembers {
		filterTasks(board.Groups, func(t domain.Task) bool { return len(t.Members) == 0 })
	}
	if filter.NoDueDate {
		filterTasks(board.Groups, func(t domain.Task) bool { return t.DueDate == "" })
	}
	if filter.NoLabels {
		filterTasks(board.Groups, func(t domain.Task) bool { return len(t.Labels) == 0 })
	}
	if len(filter.SelectMembers) > 0 {
		selection := toSet(filter.SelectMembers)
		filterTasks(board.Groups, func(t domain.Task) bool {
			for _, m := range t.Members {
				if _, ok := selection[m.Id]; ok {
					return true
				}
			}
			return false
		})
	}
	if len(filter.SelectLabels) > 0 {
		selection := toSet(filter.SelectLabels)
		filterTasks(board.Groups, func(t domain.Task) bool {
			for _, l := range t.Labels {
				if _, ok := selection[l.Color]; ok {
					return true
				}
			}
			return false
		})
	}
}

// filterGroupsByTxt retains groups whose title matches, or which contain
// a task whose title matches.
func filterGroupsByTxt(groups []domain.Group, txt string) []domain.Group {
	txt = strings.ToLower(txt)
	kept := []domain.Group{}
	for _, group := range groups {
		if strings.Contains(strings.ToLower(group.Title), txt) {
			kept = append(kept, group)
			continue
		}
		for _, task := range group.Tasks {
			if strings.Contains(strings.ToLower(task.Title), txt) {
				kept = append(kept, group)
				break
			}
		}
	}
	return kept
}

func filterTasks(groups []domain.Group, keep func(domain.Task) bool) {
	for i := range groups {
		kept := []domain.Task{}
		for _, task := range groups[i].Tasks {
			if keep(task) {
				kept = append(kept, task)
			}
		}
		groups[i].Tasks = kept
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
