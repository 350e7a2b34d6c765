package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v68/github"
	"github.com/rs/zerolog/log"
)

// isBotComment reports whether a comment was authored by a bot
// account. GitHub marks app-installation accounts with type "Bot";
// tokens for classic bot users carry the "[bot]" login suffix instead.
func isBotComment(c *github.IssueComment) bool {
	u := c.GetUser()
	if u == nil {
		return false
	}
	return u.GetType() == "Bot" || strings.HasSuffix(u.GetLogin(), "[bot]")
}

// FindBotComment scans a PR's comments for the bot's prior comment: one
// authored by a bot account whose body contains the marker substring.
// The first match wins, which together with UpsertComment keeps at most
// one such comment per marker per PR.
func FindBotComment(ctx context.Context, svc Service, owner, repo string, number int, marker string) (*github.IssueComment, error) {
	comments, err := svc.ListComments(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("listing comments on PR %d: %w", number, err)
	}
	for _, c := range comments {
		if isBotComment(c) && strings.Contains(c.GetBody(), marker) {
			log.Debug().
				Int64("comment_id", c.GetID()).
				Int("pr", number).
				Msg("found existing bot comment")
			return c, nil
		}
	}
	return nil, nil
}

// UpsertComment updates the existing bot comment identified by marker,
// or creates one when none exists.
func UpsertComment(ctx context.Context, svc Service, owner, repo string, number int, marker, body string) error {
	existing, err := FindBotComment(ctx, svc, owner, repo, number, marker)
	if err != nil {
		return err
	}
	if existing != nil {
		if err := svc.UpdateComment(ctx, owner, repo, existing.GetID(), body); err != nil {
			return fmt.Errorf("updating comment %d: %w", existing.GetID(), err)
		}
		log.Info().Int64("comment_id", existing.GetID()).Int("pr", number).Msg("updated bot comment")
		return nil
	}
	if err := svc.CreateComment(ctx, owner, repo, number, body); err != nil {
		return fmt.Errorf("creating comment on PR %d: %w", number, err)
	}
	log.Info().Int("pr", number).Msg("created bot comment")
	return nil
}
