// Copyright (c) 2017 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package conf wraps kingpin to provide:
- flags that can be given on the command line or as KMBENCH_<NAME> environment variables,
- config dump in environment form, grouped in registration order,
- typed flag wrappers (string, int, float, bool, duration, list),
- predefined log level flag (logrus integration).
*/
package conf
