// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package editor_test

import (
	"context"
	"errors"
	"time"

	"github.com/consensys/go-bcedit/pkg/clipboard"
	"github.com/consensys/go-bcedit/pkg/editor"
	"github.com/consensys/go-bcedit/pkg/graph"
	"github.com/consensys/go-bcedit/pkg/insn"
	"github.com/consensys/go-bcedit/pkg/method"
	"github.com/consensys/go-bcedit/pkg/render"
	"github.com/consensys/go-bcedit/pkg/verify"
	"github.com/consensys/go-bcedit/pkg/xref"
	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("View", func() {
	var (
		mockCtrl     *gomock.Controller
		mockObserver *MockObserver
		cls          *method.Class
		m            *method.Method
		code         []insn.Instruction
		view         *editor.View
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockObserver = NewMockObserver(mockCtrl)
		cls = method.NewClass("A", "java/lang/Object", method.ACC_PUBLIC)
		m = cls.AddMethod("m", "(I)I", method.ACC_PUBLIC|method.ACC_STATIC)
		m.MaxLocals = 1
		code = []insn.Instruction{
			insn.NewPlain(insn.NOP),
			insn.NewPlain(insn.ICONST_0),
			insn.NewPlain(insn.ICONST_1),
			insn.NewPlain(insn.IADD),
			insn.NewPlain(insn.NOP),
			insn.NewPlain(insn.ICONST_1),
			insn.NewPlain(insn.NOP),
			insn.NewPlain(insn.IRETURN),
		}
		m.Code = graph.New(code...)
		view = editor.Open(cls, m, editor.WithObserver(mockObserver), editor.WithAutoVerify(false))
	})

	AfterEach(func() {
		view.Close()
		mockCtrl.Finish()
	})

	It("should agree with the graph when opened", func() {
		Expect(view.CurrentOrder()).To(Equal(code))
		Expect(view.Len()).To(Equal(len(code)))
		//
		for _, i := range code {
			_, ok := view.Representation(i)
			Expect(ok).To(BeTrue())
		}
	})

	It("should delete non-contiguous selections as separate runs", func() {
		mockObserver.EXPECT().GraphDirty(m, gomock.Any()).Times(1)
		//
		Expect(view.SelectIndices(1, 3, 5)).To(Succeed())
		Expect(view.Delete()).To(BeEmpty())
		//
		Expect(view.Len()).To(Equal(len(code) - 3))
		Expect(m.Code.Len()).To(Equal(len(code) - 3))
		Expect(view.CurrentOrder()).To(Equal([]insn.Instruction{code[0], code[2], code[4], code[6], code[7]}))
		Expect(view.Selection()).To(BeEmpty())
		//
		for _, k := range []int{1, 3, 5} {
			_, ok := view.Representation(code[k])
			Expect(ok).To(BeFalse())
		}
	})

	It("should notify exactly once per batch", func() {
		added := insn.NewPlain(insn.POP)
		mockObserver.EXPECT().GraphDirty(m, uint64(2)).Times(1)
		//
		errs := view.ApplyUiChange(
			editor.Change{From: 0, Removed: []insn.Instruction{code[0]}},
			editor.Change{From: 2, Added: []insn.Instruction{added}},
		)
		//
		Expect(errs).To(BeEmpty())
		Expect(view.CurrentOrder()[2]).To(BeIdenticalTo(added))
		Expect(view.CurrentOrder()).To(Equal(m.Code.ToList()))
	})

	It("should not notify when a batch changes nothing", func() {
		errs := view.ApplyUiChange(editor.Change{From: 0, Removed: []insn.Instruction{insn.NewPlain(insn.NOP)}})
		//
		Expect(errs).To(HaveLen(1))
		Expect(errors.Is(errs[0], graph.ErrNotFound)).To(BeTrue())
		Expect(view.CurrentOrder()).To(Equal(code))
	})

	It("should not move the first instruction up", func() {
		view.Select(code[0])
		//
		Expect(view.MoveSelectionUp()).To(Succeed())
		Expect(view.CurrentOrder()).To(Equal(code))
		Expect(m.Code.Version()).To(Equal(uint64(0)))
	})

	It("should not move the last instruction down", func() {
		view.Select(code[7])
		//
		Expect(view.MoveSelectionDown()).To(Succeed())
		Expect(view.CurrentOrder()).To(Equal(code))
	})

	It("should move separated instructions up together", func() {
		mockObserver.EXPECT().GraphDirty(m, gomock.Any()).Times(1)
		//
		view.Select(code[1], code[3])
		//
		Expect(view.MoveSelectionUp()).To(Succeed())
		Expect(view.CurrentOrder()).To(Equal([]insn.Instruction{code[1], code[0], code[3], code[2], code[4],
			code[5], code[6], code[7]}))
		Expect(view.Selection()).To(Equal([]insn.Instruction{code[1], code[3]}))
	})

	It("should move adjacent instructions down in order", func() {
		mockObserver.EXPECT().GraphDirty(m, gomock.Any()).Times(1)
		//
		view.Select(code[1], code[2])
		//
		Expect(view.MoveSelectionDown()).To(Succeed())
		Expect(view.CurrentOrder()).To(Equal([]insn.Instruction{code[0], code[3], code[1], code[2], code[4],
			code[5], code[6], code[7]}))
	})

	It("should leave a blocked run in place", func() {
		view.Select(code[0], code[1])
		//
		Expect(view.MoveSelectionUp()).To(Succeed())
		Expect(view.CurrentOrder()).To(Equal(code))
	})

	It("should never modify the graph when selecting", func() {
		view.Select(code[2], code[6])
		Expect(view.SelectIndices(0, 4)).To(Succeed())
		Expect(view.SelectIndices(42)).NotTo(Succeed())
		view.ClearSelection()
		//
		Expect(m.Code.Version()).To(Equal(uint64(0)))
		Expect(view.Selection()).To(BeEmpty())
		Expect(view.Focus()).To(BeNil())
	})

	It("should order the selection and focus the last instruction given", func() {
		view.Select(code[5], code[2], insn.NewPlain(insn.NOP))
		//
		Expect(view.Selection()).To(Equal([]insn.Instruction{code[2], code[5]}))
		Expect(view.Focus()).To(BeIdenticalTo(code[2]))
		Expect(view.Highlights()[code[5]]).To(ContainElement(xref.STYLE_SELECTED))
	})

	It("should be idempotent when refreshed", func() {
		before := make(map[insn.Instruction]render.Representation)
		//
		for _, i := range code {
			before[i], _ = view.Representation(i)
		}
		//
		view.Refresh()
		view.Refresh()
		//
		for _, i := range code {
			r, _ := view.Representation(i)
			Expect(r).To(Equal(before[i]))
		}
	})

	It("should reject edits once closed", func() {
		view.Close()
		//
		Expect(view.IsClosed()).To(BeTrue())
		Expect(view.Delete()).To(ConsistOf(MatchError(editor.ErrClosed)))
		Expect(view.MoveSelectionUp()).To(MatchError(editor.ErrClosed))
		Expect(view.Seed()).To(MatchError(editor.ErrClosed))
		Expect(view.PasteAfter(nil, view.CopySelection())).To(MatchError(editor.ErrClosed))
	})

	It("should close when its owner is renamed", func() {
		Expect(view.ClassRenamed("B")).To(BeFalse())
		Expect(view.IsClosed()).To(BeFalse())
		Expect(view.ClassRenamed("A")).To(BeTrue())
		Expect(view.IsClosed()).To(BeTrue())
	})

	It("should close when its owner is reverted", func() {
		Expect(view.ClassReverted("A")).To(BeTrue())
		Expect(view.IsClosed()).To(BeTrue())
	})
})

var _ = Describe("Highlighting", func() {
	It("should highlight the target and failure path of a jump", func() {
		var (
			target = insn.NewLabel()
			jump   = insn.NewJump(insn.IFEQ, target)
			next   = insn.NewPlain(insn.ICONST_1)
			cls    = method.NewClass("A", "java/lang/Object", 0)
			m      = cls.AddMethod("m", "(I)I", method.ACC_STATIC)
		)
		//
		m.Code = graph.New(insn.NewVar(insn.ILOAD, 0), jump, next, insn.NewPlain(insn.IRETURN), target,
			insn.NewPlain(insn.ICONST_0), insn.NewPlain(insn.IRETURN))
		view := editor.Open(cls, m, editor.WithAutoVerify(false))
		defer view.Close()
		//
		view.Select(jump)
		highlights := view.Highlights()
		//
		Expect(highlights[jump]).To(Equal([]string{xref.STYLE_SELECTED}))
		Expect(highlights[target]).To(Equal([]string{xref.STYLE_JUMPDEST}))
		Expect(highlights[next]).To(Equal([]string{xref.STYLE_JUMPDEST_FAIL}))
		//
		view.Select(target)
		Expect(view.Highlights()[jump]).To(Equal([]string{xref.STYLE_REVERSE}))
	})
})

var _ = Describe("Rendering", func() {
	var (
		mockCtrl     *gomock.Controller
		mockRenderer *MockRenderer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockRenderer = NewMockRenderer(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should only render new and layout dependent instructions", func() {
		var (
			label = insn.NewLabel()
			jump  = insn.NewJump(insn.GOTO, label)
			plain = insn.NewPlain(insn.NOP)
			added = insn.NewPlain(insn.POP)
			cls   = method.NewClass("A", "java/lang/Object", 0)
			m     = cls.AddMethod("m", "()V", method.ACC_STATIC)
		)
		//
		m.Code = graph.New(label, plain, jump)
		// Initial rendering
		mockRenderer.EXPECT().Render(label, m).Return(render.Representation{Op: "L0"})
		mockRenderer.EXPECT().Render(plain, m).Return(render.Representation{Op: "NOP"})
		mockRenderer.EXPECT().Render(jump, m).Return(render.Representation{Op: "GOTO"})
		//
		view := editor.Open(cls, m, editor.WithRenderer(mockRenderer), editor.WithAutoVerify(false))
		defer view.Close()
		// Reconciliation
		mockRenderer.EXPECT().Render(added, m).Return(render.Representation{Op: "POP"})
		mockRenderer.EXPECT().Render(label, m).Return(render.Representation{Op: "L0"})
		mockRenderer.EXPECT().Render(jump, m).Return(render.Representation{Op: "GOTO"})
		//
		Expect(view.ApplyUiChange(editor.Change{From: 3, Added: []insn.Instruction{added}})).To(BeEmpty())
		//
		r, ok := view.Representation(added)
		Expect(ok).To(BeTrue())
		Expect(r.Op).To(Equal("POP"))
	})
})

var _ = Describe("Clipboard", func() {
	var (
		cls  *method.Class
		src  *method.Method
		dst  *method.Method
		loop *insn.Label
		jump *insn.Jump
	)

	BeforeEach(func() {
		cls = method.NewClass("A", "java/lang/Object", 0)
		src = cls.AddMethod("src", "(I)V", method.ACC_STATIC)
		dst = cls.AddMethod("dst", "(I)V", method.ACC_STATIC)
		loop = insn.NewLabel()
		jump = insn.NewJump(insn.GOTO, loop)
		src.Code = graph.New(loop, insn.NewIinc(0, 1), jump, insn.NewPlain(insn.RETURN))
		dst.Code = graph.New(insn.NewPlain(insn.RETURN))
	})

	It("should retarget pasted jumps onto pasted labels", func() {
		var (
			source = editor.Open(cls, src, editor.WithAutoVerify(false))
			target = editor.Open(cls, dst, editor.WithAutoVerify(false))
		)
		//
		defer source.Close()
		defer target.Close()
		//
		source.Select(loop, src.Code.At(1), jump)
		block := source.CopySelection()
		//
		Expect(block.HasExternalReferences()).To(BeFalse())
		Expect(target.PasteAfter(nil, block)).To(Succeed())
		Expect(target.PasteAfter(nil, block)).To(Succeed())
		//
		pasted := dst.Code.ToList()
		Expect(pasted).To(HaveLen(7))
		//
		for _, k := range []int{1, 4} {
			label, ok := pasted[k].(*insn.Label)
			Expect(ok).To(BeTrue())
			Expect(label).NotTo(BeIdenticalTo(loop))
			Expect(pasted[k+2].(*insn.Jump).Target).To(BeIdenticalTo(label))
		}
		//
		Expect(dst.Code.Dangling()).To(BeEmpty())
		Expect(src.Code.Len()).To(Equal(4))
	})

	It("should permit pasting external references", func() {
		var (
			source = editor.Open(cls, src, editor.WithAutoVerify(false))
			target = editor.Open(cls, dst, editor.WithAutoVerify(false))
		)
		//
		defer source.Close()
		defer target.Close()
		//
		source.Select(jump)
		block := source.CopySelection()
		//
		Expect(block.HasExternalReferences()).To(BeTrue())
		Expect(target.PasteAfter(dst.Code.First(), block)).To(Succeed())
		Expect(dst.Code.Len()).To(Equal(2))
		Expect(dst.Code.Dangling()).To(HaveLen(1))
	})

	It("should refuse incompatible blocks", func() {
		other := cls.AddMethod("other", "(Ljava/lang/String;)V", method.ACC_STATIC)
		other.Code = graph.New(insn.NewPlain(insn.RETURN))
		//
		var (
			source = editor.Open(cls, src, editor.WithAutoVerify(false))
			target = editor.Open(cls, other, editor.WithAutoVerify(false))
		)
		//
		defer source.Close()
		defer target.Close()
		//
		source.Select(src.Code.At(1))
		//
		err := target.PasteAfter(nil, source.CopySelection())
		//
		Expect(errors.Is(err, clipboard.ErrIncompatibleClipboard)).To(BeTrue())
		Expect(other.Code.Len()).To(Equal(1))
		Expect(other.Code.Version()).To(Equal(uint64(0)))
	})

	It("should refuse unknown anchors", func() {
		target := editor.Open(cls, dst, editor.WithAutoVerify(false))
		defer target.Close()
		//
		block := clipboard.Capture([]insn.Instruction{insn.NewPlain(insn.NOP)}, dst.Context())
		err := target.PasteAfter(insn.NewPlain(insn.NOP), block)
		//
		Expect(errors.Is(err, graph.ErrNotFound)).To(BeTrue())
		Expect(dst.Code.Len()).To(Equal(1))
	})
})

var _ = Describe("Seeding", func() {
	It("should seed an empty instance method", func() {
		var (
			cls  = method.NewClass("A", "java/lang/Object", 0)
			m    = cls.AddMethod("run", "()V", method.ACC_PUBLIC)
			view = editor.Open(cls, m, editor.WithAutoVerify(false))
		)
		//
		defer view.Close()
		//
		Expect(view.NeedsSeed()).To(BeTrue())
		Expect(view.Seed()).To(Succeed())
		Expect(view.NeedsSeed()).To(BeFalse())
		//
		order := view.CurrentOrder()
		Expect(order).To(HaveLen(3))
		Expect(order[1].Opcode()).To(Equal(insn.RETURN))
		Expect(m.Locals).To(HaveLen(1))
		Expect(m.Locals[0].Name).To(Equal("this"))
		Expect(m.Locals[0].Desc).To(Equal("LA;"))
		Expect(m.Locals[0].Start).To(BeIdenticalTo(order[0]))
		Expect(m.Locals[0].End).To(BeIdenticalTo(order[2]))
		Expect(m.MaxLocals).To(Equal(uint(1)))
		// Seeding again does nothing
		Expect(view.Seed()).To(Succeed())
		Expect(view.Len()).To(Equal(3))
	})

	It("should not add a receiver to static methods", func() {
		var (
			cls  = method.NewClass("A", "java/lang/Object", 0)
			m    = cls.AddMethod("run", "()V", method.ACC_STATIC)
			view = editor.Open(cls, m, editor.WithAutoVerify(false))
		)
		//
		defer view.Close()
		//
		Expect(view.Seed()).To(Succeed())
		Expect(m.Locals).To(BeEmpty())
		Expect(view.Len()).To(Equal(3))
	})
})

var _ = Describe("Verification", func() {
	var (
		mockCtrl     *gomock.Controller
		mockObserver *MockObserver
		mockVerifier *MockVerifier
		cls          *method.Class
		m            *method.Method
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockObserver = NewMockObserver(mockCtrl)
		mockVerifier = NewMockVerifier(mockCtrl)
		cls = method.NewClass("A", "java/lang/Object", 0)
		m = cls.AddMethod("m", "()I", method.ACC_STATIC)
		m.Code = graph.New(insn.NewPlain(insn.ICONST_0), insn.NewPlain(insn.IRETURN))
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should apply a current result", func() {
		view := editor.Open(cls, m, editor.WithObserver(mockObserver), editor.WithVerifier(mockVerifier),
			editor.WithAutoVerify(false))
		defer view.Close()
		//
		mockVerifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(verify.Passed(), nil)
		mockObserver.EXPECT().Verified(m, verify.Passed())
		//
		Expect(view.VerifyNow(context.Background())).To(Succeed())
		Expect(view.Overlay().State()).To(Equal(verify.VERIFIED))
		Expect(view.Overlay().ListStyle()).To(Equal(verify.STYLE_PASS))
	})

	It("should map the cause of a failure onto the graph", func() {
		view := editor.Open(cls, m, editor.WithObserver(mockObserver), editor.WithVerifier(mockVerifier),
			editor.WithAutoVerify(false))
		defer view.Close()
		//
		mockVerifier.EXPECT().Verify(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, snapshot *graph.Snapshot) (verify.Result, error) {
				return verify.Failed(snapshot.At(1), "bad return"), nil
			})
		mockObserver.EXPECT().Verified(m, gomock.Any())
		//
		Expect(view.VerifyNow(context.Background())).To(Succeed())
		Expect(view.Overlay().ListStyle()).To(Equal(verify.STYLE_FAIL))
		Expect(view.Overlay().IsCause(m.Code.At(1))).To(BeTrue())
	})

	It("should discard stale results", func() {
		view := editor.Open(cls, m, editor.WithObserver(mockObserver), editor.WithAutoVerify(false))
		defer view.Close()
		//
		mockObserver.EXPECT().GraphDirty(m, uint64(1))
		//
		stale := verify.Outcome{Version: m.Code.Version(), Result: verify.Passed()}
		view.ApplyUiChange(editor.Change{From: 0, Added: []insn.Instruction{insn.NewPlain(insn.NOP)}})
		//
		Expect(view.Deliver(stale)).To(BeFalse())
		Expect(view.Overlay().State()).To(Equal(verify.UNVERIFIED))
	})

	It("should discard failed runs", func() {
		view := editor.Open(cls, m, editor.WithVerifier(mockVerifier), editor.WithAutoVerify(false))
		defer view.Close()
		//
		mockVerifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(verify.Result{}, errors.New("crashed"))
		//
		err := view.VerifyNow(context.Background())
		//
		Expect(errors.Is(err, verify.ErrVerificationUnavailable)).To(BeTrue())
		Expect(view.Overlay().State()).To(Equal(verify.UNVERIFIED))
	})

	It("should unverify when a later run fails", func() {
		view := editor.Open(cls, m, editor.WithObserver(mockObserver), editor.WithVerifier(mockVerifier),
			editor.WithAutoVerify(false))
		defer view.Close()
		//
		gomock.InOrder(
			mockVerifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(verify.Passed(), nil),
			mockVerifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(verify.Result{}, errors.New("crashed")),
		)
		mockObserver.EXPECT().Verified(m, verify.Passed())
		//
		Expect(view.VerifyNow(context.Background())).To(Succeed())
		Expect(view.Overlay().State()).To(Equal(verify.VERIFIED))
		//
		err := view.VerifyNow(context.Background())
		//
		Expect(errors.Is(err, verify.ErrVerificationUnavailable)).To(BeTrue())
		Expect(view.Overlay().State()).To(Equal(verify.UNVERIFIED))
		Expect(view.Overlay().ListStyle()).To(Equal(""))
	})

	It("should discard a run overtaken by an edit", func() {
		var (
			release = make(chan struct{})
			before  = m.Code.Version()
			outcome verify.Outcome
		)
		//
		view := editor.Open(cls, m, editor.WithVerifier(mockVerifier), editor.WithAutoVerify(false))
		defer view.Close()
		//
		mockVerifier.EXPECT().Verify(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *graph.Snapshot) (verify.Result, error) {
				<-release
				return verify.Passed(), nil
			})
		//
		Expect(view.VerifyLater()).To(Succeed())
		Expect(view.ApplyUiChange(editor.Change{From: 0, Added: []insn.Instruction{insn.NewPlain(insn.NOP)}})).
			To(BeEmpty())
		close(release)
		//
		Eventually(view.Results(), 5*time.Second).Should(Receive(&outcome))
		Expect(outcome.Version).To(Equal(before))
		Expect(view.Deliver(outcome)).To(BeFalse())
		Expect(view.Overlay().State()).To(Equal(verify.UNVERIFIED))
		Expect(view.Overlay().Version()).To(Equal(m.Code.Version()))
	})

	It("should report when no verifier is available", func() {
		view := editor.Open(cls, m, editor.WithAutoVerify(false))
		defer view.Close()
		//
		Expect(errors.Is(view.VerifyNow(context.Background()), verify.ErrVerificationUnavailable)).To(BeTrue())
		Expect(view.Results()).To(BeNil())
	})

	It("should verify asynchronously after opening", func() {
		view := editor.Open(cls, m, editor.WithVerifier(verify.Lint{}))
		defer view.Close()
		//
		var outcome verify.Outcome
		//
		Eventually(view.Results(), 5*time.Second).Should(Receive(&outcome))
		Expect(view.Deliver(outcome)).To(BeTrue())
		Expect(view.Overlay().Result().Valid).To(BeTrue())
	})
})

var _ = Describe("Actions", func() {
	var (
		mockCtrl     *gomock.Controller
		mockResolver *MockResolver
		cls          *method.Class
		m            *method.Method
		load         *insn.Var
		call         *insn.Method
		label        *insn.Label
		view         *editor.View
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockResolver = NewMockResolver(mockCtrl)
		cls = method.NewClass("A", "java/lang/Object", 0)
		m = cls.AddMethod("m", "(I)V", method.ACC_STATIC)
		label = insn.NewLabel()
		load = insn.NewVar(insn.ILOAD, 0)
		call = insn.NewMethod(insn.INVOKESTATIC, "B", "run", "(I)V", false)
		m.Code = graph.New(label, load, call, insn.NewPlain(insn.RETURN))
		view = editor.Open(cls, m, editor.WithResolver(mockResolver), editor.WithAutoVerify(false))
	})

	AfterEach(func() {
		view.Close()
		mockCtrl.Finish()
	})

	It("should not offer to edit labels", func() {
		view.Select(label)
		//
		Expect(kinds(view.Actions(label))).To(Equal([]editor.ActionKind{editor.MOVE_DOWN_ACTION,
			editor.BLOCK_LOAD_ACTION, editor.ADD_ACTION, editor.REMOVE_ACTION}))
	})

	It("should offer definition and references for resolved members", func() {
		member := insn.Member{Owner: "B", Name: "run", Desc: "(I)V"}
		mockResolver.EXPECT().HasMethod(member).Return(true)
		//
		view.Select(call)
		actions := view.Actions(call)
		//
		Expect(kinds(actions)).To(Equal([]editor.ActionKind{editor.EDIT_ACTION, editor.MOVE_UP_ACTION,
			editor.MOVE_DOWN_ACTION, editor.DEFINE_ACTION, editor.SEARCH_ACTION, editor.BLOCK_LOAD_ACTION,
			editor.ADD_ACTION, editor.REMOVE_ACTION}))
		Expect(actions[3].Target).To(Equal(member))
		Expect(actions[0].Label).To(Equal("Edit"))
	})

	It("should hide definitions which cannot be resolved", func() {
		mockResolver.EXPECT().HasMethod(gomock.Any()).Return(false).Times(2)
		//
		view.Select(call)
		//
		Expect(kinds(view.Actions(call))).NotTo(ContainElement(editor.DEFINE_ACTION))
		Expect(kinds(view.Actions(call))).NotTo(ContainElement(editor.DEFINE_ACTION))
	})

	It("should offer to save multiple selections as a block", func() {
		view.Select(load, call)
		//
		actions := kinds(view.Actions(load))
		//
		Expect(actions).To(ContainElement(editor.BLOCK_SAVE_ACTION))
		Expect(actions).NotTo(ContainElement(editor.SEARCH_ACTION))
	})

	It("should not offer to save an empty selection as a block", func() {
		ret := m.Code.Last()
		//
		Expect(view.Selection()).To(BeEmpty())
		Expect(kinds(view.Actions(ret))).To(Equal([]editor.ActionKind{editor.MOVE_UP_ACTION,
			editor.BLOCK_LOAD_ACTION, editor.ADD_ACTION, editor.REMOVE_ACTION}))
	})

	It("should find references to members and classes", func() {
		other := insn.NewField(insn.GETSTATIC, "B", "count", "I")
		code := []insn.Instruction{load, call, other, insn.NewImmediate(insn.NEW, insn.TypeOperand("B"))}
		//
		Expect(editor.References(code, insn.Member{Owner: "B", Name: "run", Desc: "(I)V"})).
			To(Equal([]insn.Instruction{call}))
		Expect(editor.References(code, insn.Member{Owner: "B"})).To(Equal(code[1:]))
		Expect(editor.References(code, insn.Member{Owner: "C"})).To(BeEmpty())
	})
})

// ===================================================================
// Test Helpers
// ===================================================================

func kinds(actions []editor.Action) []editor.ActionKind {
	var ks []editor.ActionKind
	//
	for _, a := range actions {
		ks = append(ks, a.Kind)
	}
	//
	return ks
}
