package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tracker/internal/model"
	"tracker/internal/repository"
)

// Stats is a point-in-time count of everything in the tracker.
type Stats struct {
	Projects      int64                      `json:"projects"`
	Tasks         int64                      `json:"tasks"`
	Comments      int64                      `json:"comments"`
	TasksByStatus map[model.TaskStatus]int64 `json:"tasksByStatus"`
	UsersByRole   map[model.Role]int64       `json:"usersByRole"`
	GeneratedAt   time.Time                  `json:"generatedAt"`
}

// ReportService builds dashboard counts and the periodic activity digest.
type ReportService struct {
	userRepo    *repository.UserRepository
	projectRepo *repository.ProjectRepository
	taskRepo    *repository.TaskRepository
	commentRepo *repository.CommentRepository
}

func NewReportService(userRepo *repository.UserRepository, projectRepo *repository.ProjectRepository, taskRepo *repository.TaskRepository, commentRepo *repository.CommentRepository) *ReportService {
	return &ReportService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		commentRepo: commentRepo,
	}
}

func (s *ReportService) Stats(ctx context.Context, now time.Time) (Stats, error) {
	projects, err := s.projectRepo.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	byStatus, err := s.taskRepo.CountByStatus(ctx)
	if err != nil {
		return Stats{}, err
	}
	comments, err := s.commentRepo.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	byRole, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return Stats{}, err
	}

	var tasks int64
	for _, n := range byStatus {
		tasks += n
	}

	return Stats{
		Projects:      projects,
		Tasks:         tasks,
		Comments:      comments,
		TasksByStatus: byStatus,
		UsersByRole:   byRole,
		GeneratedAt:   now,
	}, nil
}

// Summary renders the digest as Telegram-flavoured HTML.
func (s *ReportService) Summary(ctx context.Context, now time.Time) (string, error) {
	stats, err := s.Stats(ctx, now)
	if err != nil {
		return "", err
	}
	return FormatSummary(stats), nil
}

func FormatSummary(stats Stats) string {
	var builder strings.Builder
	builder.WriteString("📋 <b>Tracker report</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", stats.GeneratedAt.Format("2006-01-02 15:04")))

	builder.WriteString(fmt.Sprintf("📁 Projects: %d\n", stats.Projects))
	builder.WriteString(fmt.Sprintf("✅ Tasks: %d\n", stats.Tasks))
	for _, status := range model.Statuses {
		builder.WriteString(fmt.Sprintf("  • %s: %d\n", status, stats.TasksByStatus[status]))
	}
	builder.WriteString(fmt.Sprintf("💬 Comments: %d\n\n", stats.Comments))

	builder.WriteString("👥 <b>Users</b>\n")
	for _, role := range model.Roles {
		builder.WriteString(fmt.Sprintf("  • %s: %d\n", role, stats.UsersByRole[role]))
	}
	return builder.String()
}
