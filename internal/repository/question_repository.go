package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prepzone/prepzone-backend/internal/model"
)

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = `id, exam_id, section, question_type, prompt, options,
	correct_index, marks, subject, topic, difficulty, explanation, sub_questions, order_num`

func scanQuestion(row interface{ Scan(...any) error }) (*model.Question, error) {
	q := &model.Question{}
	var optionsJSON, subsJSON []byte
	err := row.Scan(&q.ID, &q.ExamID, &q.Section, &q.QuestionType, &q.Prompt,
		&optionsJSON, &q.CorrectIndex, &q.Marks, &q.Subject, &q.Topic,
		&q.Difficulty, &q.Explanation, &subsJSON, &q.OrderNum)
	if err != nil {
		return nil, err
	}
	if len(optionsJSON) > 0 {
		if err := json.Unmarshal(optionsJSON, &q.Options); err != nil {
			return nil, fmt.Errorf("decode options: %w", err)
		}
	}
	if len(subsJSON) > 0 {
		if err := json.Unmarshal(subsJSON, &q.SubQuestions); err != nil {
			return nil, fmt.Errorf("decode sub_questions: %w", err)
		}
	}
	return q, nil
}

// GetByID retrieves a question by its UUID.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id)
	return scanQuestion(row)
}

// ListByExam retrieves all questions for an exam ordered by order_num.
func (r *QuestionRepository) ListByExam(ctx context.Context, examID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+` FROM questions
		 WHERE exam_id = $1 ORDER BY order_num, id`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

// Create inserts a single question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	optionsJSON, subsJSON, err := encodeQuestionJSON(q)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (exam_id, section, question_type, prompt, options,
		                        correct_index, marks, subject, topic, difficulty,
		                        explanation, sub_questions, order_num)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id`,
		q.ExamID, q.Section, q.QuestionType, q.Prompt, optionsJSON,
		q.CorrectIndex, q.Marks, q.Subject, q.Topic, q.Difficulty,
		q.Explanation, subsJSON, q.OrderNum,
	).Scan(&q.ID)
}

// Update persists mutable question fields.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	optionsJSON, subsJSON, err := encodeQuestionJSON(q)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`UPDATE questions SET section = $1, question_type = $2, prompt = $3,
		        options = $4, correct_index = $5, marks = $6, subject = $7,
		        topic = $8, difficulty = $9, explanation = $10,
		        sub_questions = $11, order_num = $12
		 WHERE id = $13`,
		q.Section, q.QuestionType, q.Prompt, optionsJSON, q.CorrectIndex,
		q.Marks, q.Subject, q.Topic, q.Difficulty, q.Explanation,
		subsJSON, q.OrderNum, q.ID)
	return err
}

// Delete removes a question.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	return err
}

// ReplaceAll atomically replaces an exam's full question set.
func (r *QuestionRepository) ReplaceAll(ctx context.Context, examID uuid.UUID, questions []model.Question) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE exam_id = $1`, examID); err != nil {
		return err
	}

	for i := range questions {
		q := &questions[i]
		q.ExamID = examID
		optionsJSON, subsJSON, err := encodeQuestionJSON(q)
		if err != nil {
			return err
		}
		err = tx.QueryRow(ctx,
			`INSERT INTO questions (exam_id, section, question_type, prompt, options,
			                        correct_index, marks, subject, topic, difficulty,
			                        explanation, sub_questions, order_num)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			 RETURNING id`,
			q.ExamID, q.Section, q.QuestionType, q.Prompt, optionsJSON,
			q.CorrectIndex, q.Marks, q.Subject, q.Topic, q.Difficulty,
			q.Explanation, subsJSON, q.OrderNum,
		).Scan(&q.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// CountByExam returns the number of questions attached to an exam.
func (r *QuestionRepository) CountByExam(ctx context.Context, examID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM questions WHERE exam_id = $1`, examID).Scan(&count)
	return count, err
}

func encodeQuestionJSON(q *model.Question) ([]byte, []byte, error) {
	var optionsJSON, subsJSON []byte
	var err error
	if q.Options != nil {
		if optionsJSON, err = json.Marshal(q.Options); err != nil {
			return nil, nil, fmt.Errorf("encode options: %w", err)
		}
	}
	if q.SubQuestions != nil {
		if subsJSON, err = json.Marshal(q.SubQuestions); err != nil {
			return nil, nil, fmt.Errorf("encode sub_questions: %w", err)
		}
	}
	return optionsJSON, subsJSON, nil
}
