package safe

import (
	"fmt"
	"runtime"
	"sync"

	"gocv.io/x/gocv"
)

// Mat owns one gocv.Mat. Close may be called any number of times and from
// any goroutine; reads after Close see an empty Mat.
type Mat struct {
	mu     sync.RWMutex
	mat    gocv.Mat
	closed bool
	tag    string
}

// NewMatFromMat takes ownership of src, closing it on failure. The caller
// must not close src afterwards.
func NewMatFromMat(src gocv.Mat, tag string) (*Mat, error) {
	if src.Empty() || src.Rows() <= 0 || src.Cols() <= 0 {
		src.Close()
		return nil, fmt.Errorf("Mat %s: source is empty", tag)
	}

	m := &Mat{mat: src, tag: tag}
	runtime.SetFinalizer(m, (*Mat).Close)
	return m, nil
}

// Validate reports why m cannot be read for operation
func (m *Mat) Validate(operation string) error {
	if m == nil {
		return fmt.Errorf("Mat is nil for operation: %s", operation)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return fmt.Errorf("Mat %s is closed for operation: %s", m.tag, operation)
	}
	if m.mat.Empty() {
		return fmt.Errorf("Mat %s is empty for operation: %s", m.tag, operation)
	}
	return nil
}

// Shape returns rows, cols and channels, all zero once closed
func (m *Mat) Shape() (rows, cols, channels int) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, 0, 0
	}
	return m.mat.Rows(), m.mat.Cols(), m.mat.Channels()
}

func (m *Mat) Type() gocv.MatType {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return gocv.MatTypeCV8UC1
	}
	return m.mat.Type()
}

// Bytes returns a copy of the pixel data in row-major order
func (m *Mat) Bytes() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, fmt.Errorf("Mat %s is closed", m.tag)
	}

	if m.mat.IsContinuous() {
		return append([]byte(nil), m.mat.ToBytes()...), nil
	}

	dense := m.mat.Clone()
	defer dense.Close()
	return append([]byte(nil), dense.ToBytes()...), nil
}

// GetMat exposes the underlying Mat for gocv calls; it stays owned by m
func (m *Mat) GetMat() gocv.Mat {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mat
}

func (m *Mat) Tag() string {
	return m.tag
}

func (m *Mat) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true
	m.mat.Close()
	runtime.SetFinalizer(m, nil)
}
