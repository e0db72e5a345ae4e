/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package suite

import (
	"fmt"

	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

// SuiteMessage is the full name of the textproto root message:
//
//	case {
//	  name: "precedence"
//	  expression: "2+3*4"
//	  want: 14
//	}
//	case {
//	  expression: "1/0"
//	  want_error: "division_by_zero"
//	}
const SuiteMessage = "arith.suite.Suite"

const caseMessage = "arith.suite.Case"

func scalarField(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   typ.Enum(),
	}
}

// suiteFile describes the suite schema. It is built in code so no
// generated package is needed.
func suiteFile() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("arith/suite.proto"),
		Package: proto.String("arith.suite"),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("Case"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("name", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					scalarField("expression", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					scalarField("want", 3, descriptorpb.FieldDescriptorProto_TYPE_DOUBLE),
					scalarField("tolerance", 4, descriptorpb.FieldDescriptorProto_TYPE_DOUBLE),
					scalarField("want_error", 5, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				},
			},
			{
				Name: proto.String("Suite"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{
						Name:     proto.String("case"),
						Number:   proto.Int32(1),
						Label:    descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum(),
						Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
						TypeName: proto.String("." + caseMessage),
					},
				},
			},
		},
	}
}

// Loader handles parsing suite textprotos using its own proto registry.
type Loader struct {
	registry *protoregistry.Files
	suite    protoreflect.MessageDescriptor
	kase     protoreflect.MessageDescriptor
}

// NewLoader creates a Loader with the suite schema registered.
func NewLoader() (*Loader, error) {
	registry := new(protoregistry.Files)
	fd, err := protodesc.NewFile(suiteFile(), registry)
	if err != nil {
		return nil, fmt.Errorf("failed to build suite descriptor: %w", err)
	}
	if err := registry.RegisterFile(fd); err != nil {
		return nil, fmt.Errorf("failed to register suite descriptor: %w", err)
	}

	l := &Loader{registry: registry}
	if l.suite, err = l.findMessage(SuiteMessage); err != nil {
		return nil, err
	}
	if l.kase, err = l.findMessage(caseMessage); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Loader) findMessage(name string) (protoreflect.MessageDescriptor, error) {
	desc, err := l.registry.FindDescriptorByName(protoreflect.FullName(name))
	if err != nil {
		return nil, fmt.Errorf("message %q not found in registry: %w", name, err)
	}
	msgDesc, ok := desc.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, fmt.Errorf("%q is not a message type", name)
	}
	return msgDesc, nil
}

// ParseTextproto parses textproto content into a dynamic Suite message.
func (l *Loader) ParseTextproto(data []byte) (protoreflect.Message, error) {
	msg := dynamicpb.NewMessage(l.suite)
	if err := prototext.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("failed to parse textproto: %w", err)
	}
	return msg.ProtoReflect(), nil
}

// Cases extracts the cases of a Suite message.
func (l *Loader) Cases(msg protoreflect.Message) ([]Case, error) {
	if msg.Descriptor().FullName() != l.suite.FullName() {
		return nil, fmt.Errorf("expected %s, got %s", l.suite.FullName(), msg.Descriptor().FullName())
	}

	fields := l.kase.Fields()
	list := msg.Get(l.suite.Fields().ByName("case")).List()
	cases := make([]Case, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		m := list.Get(i).Message()
		c := Case{
			Name:       m.Get(fields.ByName("name")).String(),
			Expression: m.Get(fields.ByName("expression")).String(),
			Want:       m.Get(fields.ByName("want")).Float(),
			Tolerance:  m.Get(fields.ByName("tolerance")).Float(),
			WantError:  m.Get(fields.ByName("want_error")).String(),
		}
		if c.Name == "" {
			c.Name = fmt.Sprintf("case_%d", i)
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// Marshal renders cases as a multi-line Suite textproto.
func (l *Loader) Marshal(cases []Case) ([]byte, error) {
	fields := l.kase.Fields()
	msg := dynamicpb.NewMessage(l.suite)
	list := msg.Mutable(l.suite.Fields().ByName("case")).List()
	for _, c := range cases {
		m := dynamicpb.NewMessage(l.kase)
		m.Set(fields.ByName("name"), protoreflect.ValueOfString(c.Name))
		m.Set(fields.ByName("expression"), protoreflect.ValueOfString(c.Expression))
		m.Set(fields.ByName("want"), protoreflect.ValueOfFloat64(c.Want))
		m.Set(fields.ByName("tolerance"), protoreflect.ValueOfFloat64(c.Tolerance))
		m.Set(fields.ByName("want_error"), protoreflect.ValueOfString(c.WantError))
		list.Append(protoreflect.ValueOfMessage(m))
	}
	return prototext.MarshalOptions{Multiline: true}.Marshal(msg)
}

// LoadTextproto parses cases from a Suite textproto.
func LoadTextproto(data []byte) ([]Case, error) {
	l, err := NewLoader()
	if err != nil {
		return nil, err
	}
	msg, err := l.ParseTextproto(data)
	if err != nil {
		return nil, err
	}
	return l.Cases(msg)
}
