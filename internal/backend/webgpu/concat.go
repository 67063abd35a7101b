package webgpu

import (
	"fmt"

	"github.com/go-webgpu/webgpu/wgpu"
	"k8s.io/klog/v2"

	"github.com/strand-ml/strand/internal/kernels"
	"github.com/strand-ml/strand/internal/op"
	"github.com/strand-ml/strand/internal/tensor"
)

// executor moves blocks between GPU buffers per a concat plan. The whole op
// is one stream work item: upload inputs, encode one CopyBufferToBuffer per
// contiguous run, submit, read the result back into the output's staging
// mirror. The host thread only enqueues.
type executor struct {
	backend *Backend
}

// checkDType rejects element types whose runs can violate WebGPU's 4-byte
// copy alignment. 4- and 8-byte elements always produce aligned runs.
func checkDType(dtype tensor.DataType) error {
	if dtype.Size()%4 != 0 {
		return fmt.Errorf("webgpu: dtype %s not supported (copy offsets must be 4-byte aligned)", dtype)
	}
	return nil
}

func (e *executor) Concat(st op.Stream, inputs []*tensor.RawTensor, output *tensor.RawTensor, plan kernels.Plan) error {
	if err := checkDType(plan.DType); err != nil {
		return err
	}

	return st.Enqueue(func() error {
		b := e.backend
		outSize := align4(output.ByteSize())
		outUsage := wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst
		outBuf := b.pool.Acquire(outSize, outUsage)
		defer b.pool.Release(outBuf, outSize, outUsage)

		encoder := b.device.CreateCommandEncoder(nil)
		var srcBufs []*wgpu.Buffer
		for i, in := range inputs {
			run := plan.RunBytes[i]
			if run == 0 {
				continue
			}
			srcBuf := b.createBuffer(in.Data(), wgpu.BufferUsageCopySrc)
			srcBufs = append(srcBufs, srcBuf)
			off := plan.DstOffset(i)
			for j := 0; j < plan.Outer; j++ {
				encoder.CopyBufferToBuffer(srcBuf,
					uint64(j*run), outBuf, uint64(j*plan.DstPitch+off), uint64(run))
			}
		}
		cmdBuffer := encoder.Finish(nil)
		b.queue.Submit(cmdBuffer)
		for _, buf := range srcBufs {
			buf.Release()
		}

		klog.V(4).Infof("webgpu concat: %d inputs, %d bytes out", len(inputs), output.ByteSize())
		data, err := b.readBuffer(outBuf, outSize)
		if err != nil {
			return err
		}
		copy(output.Data(), data)
		return nil
	})
}

func (e *executor) Split(st op.Stream, input *tensor.RawTensor, outputs []*tensor.RawTensor, plan kernels.Plan) error {
	if err := checkDType(plan.DType); err != nil {
		return err
	}

	return st.Enqueue(func() error {
		b := e.backend
		srcBuf := b.createBuffer(input.Data(), wgpu.BufferUsageCopySrc)
		defer srcBuf.Release()

		for i, out := range outputs {
			run := plan.RunBytes[i]
			if run == 0 {
				continue
			}
			size := align4(out.ByteSize())
			usage := wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst
			dstBuf := b.pool.Acquire(size, usage)

			encoder := b.device.CreateCommandEncoder(nil)
			off := plan.DstOffset(i)
			for j := 0; j < plan.Outer; j++ {
				encoder.CopyBufferToBuffer(srcBuf,
					uint64(j*plan.DstPitch+off), dstBuf, uint64(j*run), uint64(run))
			}
			cmdBuffer := encoder.Finish(nil)
			b.queue.Submit(cmdBuffer)

			data, err := b.readBuffer(dstBuf, size)
			b.pool.Release(dstBuf, size, usage)
			if err != nil {
				return err
			}
			copy(out.Data(), data)
		}
		return nil
	})
}
