package service

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sandra-backend/dto"
	"sandra-backend/model"
)

// fakeConfigRepo keeps rows in memory and counts reads so tests can observe caching.
type fakeConfigRepo struct {
	rows      map[uuid.UUID]*model.Config
	createErr error

	getByKeyCalls     int
	listByPrefixCalls int
}

func newFakeConfigRepo(seed ...model.Config) *fakeConfigRepo {
	r := &fakeConfigRepo{rows: map[uuid.UUID]*model.Config{}}
	for _, cfg := range seed {
		row := cfg
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		r.rows[row.ID] = &row
	}
	return r
}

func (r *fakeConfigRepo) live() []model.Config {
	out := make([]model.Config, 0, len(r.rows))
	for _, row := range r.rows {
		if !row.DeletedAt.Valid {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func (r *fakeConfigRepo) List() ([]model.Config, error) {
	return r.live(), nil
}

func (r *fakeConfigRepo) ListByPrefix(prefix string) ([]model.Config, error) {
	r.listByPrefixCalls++
	var out []model.Config
	for _, row := range r.live() {
		if strings.HasPrefix(row.Key, prefix) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeConfigRepo) GetByID(id uuid.UUID) (*model.Config, error) {
	row, ok := r.rows[id]
	if !ok || row.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *row
	return &cp, nil
}

func (r *fakeConfigRepo) GetByKey(key string) (*model.Config, error) {
	r.getByKeyCalls++
	for _, row := range r.live() {
		if row.Key == key {
			cp := row
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeConfigRepo) Create(cfg *model.Config) error {
	if r.createErr != nil {
		return r.createErr
	}
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	cp := *cfg
	r.rows[cfg.ID] = &cp
	return nil
}

func (r *fakeConfigRepo) Update(cfg *model.Config) error {
	cp := *cfg
	r.rows[cfg.ID] = &cp
	return nil
}

func (r *fakeConfigRepo) Delete(id uuid.UUID) error {
	if row, ok := r.rows[id]; ok {
		row.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	return nil
}

func (r *fakeConfigRepo) PurgeDeleted(before time.Time) (int64, error) {
	var n int64
	for id, row := range r.rows {
		if row.DeletedAt.Valid && row.DeletedAt.Time.Before(before) {
			delete(r.rows, id)
			n++
		}
	}
	return n, nil
}

// fakeProvider records what it was asked to deliver.
type fakeProvider struct {
	sent []*OutgoingMail
	err  error
}

func (p *fakeProvider) Send(mail *OutgoingMail) ([]dto.MailSendResult, error) {
	p.sent = append(p.sent, mail)
	if p.err != nil {
		return nil, p.err
	}
	results := make([]dto.MailSendResult, 0, len(mail.To))
	for _, rcpt := range mail.To {
		results = append(results, dto.MailSendResult{Email: rcpt.Email, Status: "sent", ID: "msg-" + rcpt.Email})
	}
	return results, nil
}
