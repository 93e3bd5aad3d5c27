// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"

	"github.com/danielhkuo/quickly-survey/models"
)

// PassedPolls returns the polls the account has answered at least one
// question of, newest start first. Each poll nests its questions, their
// options and the submissions made so far. When ownOnly is set, only the
// account's own submissions are included.
func (s *Store) PassedPolls(ctx context.Context, accountID string, ownOnly bool) ([]models.PassedPoll, error) {
	polls, err := s.ListPolls(ctx, PollFilter{AnsweredBy: accountID})
	if err != nil {
		return nil, err
	}
	result := make([]models.PassedPoll, 0, len(polls))
	if len(polls) == 0 {
		return result, nil
	}

	pollIDs := make([]string, len(polls))
	for i, p := range polls {
		pollIDs[i] = p.ID
	}
	questions, err := s.ListQuestions(ctx, QuestionFilter{PollIDs: pollIDs})
	if err != nil {
		return nil, err
	}

	questionIDs := make([]string, len(questions))
	for i, q := range questions {
		questionIDs[i] = q.ID
	}
	answers, err := s.ListAnswers(ctx, AnswerFilter{QuestionIDs: questionIDs})
	if err != nil {
		return nil, err
	}

	uaFilter := UserAnswerFilter{QuestionIDs: questionIDs}
	if ownOnly {
		uaFilter.AccountID = accountID
	}
	userAnswers, err := s.ListUserAnswers(ctx, uaFilter)
	if err != nil {
		return nil, err
	}

	answersByQuestion := map[string][]models.Answer{}
	for _, a := range answers {
		answersByQuestion[a.Question] = append(answersByQuestion[a.Question], a)
	}
	submissionsByQuestion := map[string][]models.UserAnswer{}
	for _, ua := range userAnswers {
		submissionsByQuestion[ua.Question] = append(submissionsByQuestion[ua.Question], ua)
	}
	questionsByPoll := map[string][]models.PassedQuestion{}
	for _, q := range questions {
		pq := models.PassedQuestion{
			Question:     q,
			Answers:      answersByQuestion[q.ID],
			UsersAnswers: submissionsByQuestion[q.ID],
		}
		if pq.Answers == nil {
			pq.Answers = []models.Answer{}
		}
		if pq.UsersAnswers == nil {
			pq.UsersAnswers = []models.UserAnswer{}
		}
		questionsByPoll[q.Poll] = append(questionsByPoll[q.Poll], pq)
	}

	for _, p := range polls {
		qs := questionsByPoll[p.ID]
		if qs == nil {
			qs = []models.PassedQuestion{}
		}
		result = append(result, models.PassedPoll{Poll: p, Questions: qs})
	}
	return result, nil
}
