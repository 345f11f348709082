package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
)

type recordSink struct {
	count int
}

func (r *recordSink) RecordExecution(ExecutionRecord) error {
	r.count++
	return nil
}

func (r *recordSink) RecordLookup(LookupRecord) error {
	r.count++
	return nil
}

// closingSink is a Sink that also implements io.Closer.
type closingSink struct {
	mock.Mock
}

func (m *closingSink) RecordExecution(rec ExecutionRecord) error {
	return m.Called(rec).Error(0)
}

func (m *closingSink) RecordLookup(rec LookupRecord) error {
	return m.Called(rec).Error(0)
}

func (m *closingSink) Close() error {
	return m.Called().Error(0)
}

// TestMultiSink ensures records are forwarded to all sinks.
func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordExecution(ExecutionRecord{}); err != nil {
		t.Fatalf("record execution: %v", err)
	}
	if err := m.RecordLookup(LookupRecord{}); err != nil {
		t.Fatalf("record lookup: %v", err)
	}
	if s1.count != 2 || s2.count != 2 {
		t.Fatalf("records not forwarded")
	}
}

func TestMultiSink_Close(t *testing.T) {
	rec := ExecutionRecord{RunID: "r1", Executor: "box"}
	c1, c2 := &closingSink{}, &closingSink{}
	c1.On("RecordExecution", rec).Return(nil)
	c2.On("RecordExecution", rec).Return(nil)
	c1.On("Close").Return(nil)
	c2.On("Close").Return(errors.New("flush failed"))

	m := NewMultiSink(c1, &recordSink{}, c2)
	if err := m.RecordExecution(rec); err != nil {
		t.Fatalf("record execution: %v", err)
	}
	if err := m.Close(); err == nil || err.Error() != "flush failed" {
		t.Fatalf("unexpected close error: %v", err)
	}
	c1.AssertExpectations(t)
	c2.AssertExpectations(t)
}
