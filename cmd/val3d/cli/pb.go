// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"fmt"
	"io"
	"sync"

	pb "gopkg.in/cheggaaa/pb.v1"
)

// ProgressBar tracks validated features relative to the total. The bar is
// started by the first update, once the total is known.
type ProgressBar struct {
	w     io.Writer
	bar   *pb.ProgressBar
	start sync.Once
}

// NewProgressBar creates a progress bar drawn on w.
func NewProgressBar(w io.Writer) *ProgressBar {
	return &ProgressBar{w: w}
}

// Update records one more validated feature. It is safe for concurrent use.
func (p *ProgressBar) Update(_, total int) {
	p.start.Do(func() {
		p.bar = pb.New(total).SetWidth(79)
		p.bar.Output = p.w
		p.bar.ShowSpeed = true
		p.bar.Start()
	})

	p.bar.Increment()
}

// Finish stops the bar and clears the terminal line of progress output.
func (p *ProgressBar) Finish() {
	if p.bar == nil {
		return
	}

	// make sure newline is not printed by Finish()
	p.bar.Output = nil
	p.bar.NotPrint = true

	p.bar.Finish()

	fmt.Fprintf(p.w, "\033[2K\r") // clear status bar
}
