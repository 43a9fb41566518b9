// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
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


// Package pipeline chains several Intcode VMs running the same program.
//
// Each stage gets its own copy of the program and is connected to the next
// stage by a vm.Queue. Before any signal is sent, every stage receives its
// phase setting as its first input value.
//
// In linear mode, the signal is fed to the first stage and each stage is run
// to completion in order. The result is the last value emitted by the last
// stage.
//
// In feedback mode, the output of the last stage is also connected to the
// input of the first stage. Stages suspend when their input queue runs dry
// and are resumed round-robin until all of them have halted. The result is
// the last value emitted by the last stage.
package pipeline
