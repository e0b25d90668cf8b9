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
Package partition reads cluster assignment listings written by the clustering
programs and decides whether two listings describe the same grouping of points
regardless of how clusters are labeled.

A listing has one line per point:

	Point 17 is in Cluster 3

Point and cluster tokens are opaque and compared by equality only.
*/
package partition
