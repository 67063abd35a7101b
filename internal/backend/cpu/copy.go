package cpu

import (
	"github.com/strand-ml/strand/internal/kernels"
	"github.com/strand-ml/strand/internal/op"
	"github.com/strand-ml/strand/internal/tensor"
)

// executor moves blocks between host tensors per a concat plan. Concat is
// byte-for-byte data movement, so one dtype-agnostic block copy serves every
// element type.
type executor struct{}

// Concat copies every input's contiguous runs into the output. The whole
// gather is one stream work item; the host returns as soon as it is queued.
func (executor) Concat(st op.Stream, inputs []*tensor.RawTensor, output *tensor.RawTensor, plan kernels.Plan) error {
	return st.Enqueue(func() error {
		dst := output.Data()
		for i, in := range inputs {
			run := plan.RunBytes[i]
			if run == 0 {
				continue
			}
			src := in.Data()
			off := plan.DstOffset(i)
			for j := 0; j < plan.Outer; j++ {
				copy(dst[j*plan.DstPitch+off:j*plan.DstPitch+off+run], src[j*run:(j+1)*run])
			}
		}
		return nil
	})
}

// Split is the inverse scatter: each output receives its runs from the
// concatenated input.
func (executor) Split(st op.Stream, input *tensor.RawTensor, outputs []*tensor.RawTensor, plan kernels.Plan) error {
	return st.Enqueue(func() error {
		src := input.Data()
		for i, out := range outputs {
			run := plan.RunBytes[i]
			if run == 0 {
				continue
			}
			dst := out.Data()
			off := plan.DstOffset(i)
			for j := 0; j < plan.Outer; j++ {
				copy(dst[j*run:(j+1)*run], src[j*plan.DstPitch+off:j*plan.DstPitch+off+run])
			}
		}
		return nil
	})
}
